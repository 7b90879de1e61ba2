package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/sentinelos/engine/pkg/errors"
)

func TestNewUpdateNormalizes(t *testing.T) {
	u, err := NewUpdate(" acme ", "\tLaunch Friday.\n", "")
	require.NoError(t, err)
	assert.Equal(t, Update{OrgID: "acme", Text: "Launch Friday.", Source: DefaultSource}, u)

	u, err = NewUpdate("acme", "Launch Friday.", " standup ")
	require.NoError(t, err)
	assert.Equal(t, "standup", u.Source)
}

func TestNewUpdateRejects(t *testing.T) {
	cases := map[string][3]string{
		"empty text":      {"acme", "", ""},
		"whitespace text": {"acme", "   \n\t ", ""},
		"missing org":     {"  ", "Launch Friday.", ""},
		"long org":        {strings.Repeat("a", 129), "Launch Friday.", ""},
		"long source":     {"acme", "Launch Friday.", strings.Repeat("s", 256)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewUpdate(c[0], c[1], c[2])
			require.Error(t, err)
			assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		})
	}
}

func TestNewUpdateTagsOrg(t *testing.T) {
	_, err := NewUpdate("acme", " ", "")
	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "acme", ae.Meta["org_id"])
}
