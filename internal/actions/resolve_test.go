package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sdui/internal/schema"
)

func decodeAction(t *testing.T, raw string) *schema.Action {
	t.Helper()
	var action schema.Action
	require.NoError(t, json.Unmarshal([]byte(raw), &action))
	return &action
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		token Token
	}{
		{"push params.pageId", `{"type":"@pushPage","params":{"pageId":"p2"}}`, "@pushPage:p2"},
		{"push params.page_id", `{"type":"@pushPage","params":{"page_id":"p3"}}`, "@pushPage:p3"},
		{"push top-level pageId", `{"type":"@pushPage","pageId":"p4"}`, "@pushPage:p4"},
		{"push priority", `{"type":"@pushPage","params":{"pageId":"a","page_id":"b"},"pageId":"c"}`, "@pushPage:a"},
		{"push empty pageId falls through", `{"type":"@pushPage","params":{"pageId":""},"pageId":"c"}`, "@pushPage:c"},
		{"push without target", `{"type":"@pushPage"}`, "@pushPage"},
		{"push target with colon", `{"type":"@pushPage","params":{"pageId":"a:b"}}`, "@pushPage:a:b"},
		{"pop object", `{"type":"@popPage","params":{"x":1}}`, "@popPage"},
		{"toast object", `{"type":"@toast","params":{"message":"hi"}}`, `{"type":"@toast","params":{"message":"hi"}}`},
		{"submit object", `{"type":"@submitForm"}`, `{"type":"@submitForm"}`},
		{"biometric object", `{"params":{"reason":"pay"},"type":"@biometricAuth"}`, `{"params":{"reason":"pay"},"type":"@biometricAuth"}`},
		{"custom type drops params", `{"type":"@share","params":{"url":"x"}}`, "@share"},
		{"plain pop", `"@popPage"`, "@popPage"},
		{"plain name", `"@register"`, "@register"},
		{"plain legacy push", `"@pushPage:home"`, "@pushPage:home"},
		{"encoded push", `"{\"type\":\"@pushPage\",\"params\":{\"pageId\":\"p9\"}}"`, "@pushPage:p9"},
		{"encoded toast compacts", `"{ \"type\": \"@toast\", \"params\": {\"message\": \"yo\"} }"`, `{"type":"@toast","params":{"message":"yo"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := Resolve(decodeAction(t, tc.raw))
			require.True(t, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}

func TestResolveInertActions(t *testing.T) {
	_, ok := Resolve(nil)
	assert.False(t, ok)

	_, ok = Resolve(schema.NameAction(""))
	assert.False(t, ok)

	_, ok = Resolve(schema.ObjectActionFromBody(map[string]any{"params": map[string]any{}}))
	assert.False(t, ok)
}

func TestResolveConstructedActions(t *testing.T) {
	token, ok := Resolve(schema.ObjectAction(PushPage, map[string]any{"pageId": "p2"}))
	require.True(t, ok)
	assert.Equal(t, Token("@pushPage:p2"), token)

	token, ok = Resolve(schema.NameAction(PopPage))
	require.True(t, ok)
	assert.Equal(t, Token("@popPage"), token)
}

func TestParseToken(t *testing.T) {
	parsed, err := ParseToken("@pushPage:a:b")
	require.NoError(t, err)
	assert.Equal(t, KindPush, parsed.Kind)
	assert.Equal(t, "a:b", parsed.PageID)

	parsed, err = ParseToken("@pushPage")
	require.NoError(t, err)
	assert.Equal(t, KindPush, parsed.Kind)
	assert.Empty(t, parsed.PageID)

	parsed, err = ParseToken("@popPage")
	require.NoError(t, err)
	assert.Equal(t, KindPop, parsed.Kind)

	parsed, err = ParseToken(`{"type":"@toast","params":{"message":"m"}}`)
	require.NoError(t, err)
	assert.Equal(t, KindEncoded, parsed.Kind)
	assert.Equal(t, Toast, parsed.Type)
	assert.Equal(t, "m", parsed.Params["message"])

	parsed, err = ParseToken("@register")
	require.NoError(t, err)
	assert.Equal(t, KindName, parsed.Kind)
	assert.Equal(t, Register, parsed.Type)
}

func TestParseTokenReportsParseError(t *testing.T) {
	parsed, err := ParseToken(`{"type":"@toast",`)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, Token(`{"type":"@toast",`), parseErr.Token)
	assert.Equal(t, KindEncoded, parsed.Kind)

	_, err = ParseToken(`{"params":{}}`)
	require.ErrorAs(t, err, &parseErr)
}
