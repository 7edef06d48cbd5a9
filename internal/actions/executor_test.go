package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sdui/internal/schema"
)

func formSchema() *schema.Schema {
	return &schema.Schema{
		ID: "app",
		Pages: []schema.Page{{
			ID: "form",
			Components: []schema.Component{{
				ID:         "email",
				Type:       schema.TypeTextInput,
				Props:      map[string]any{"label": "Email"},
				Validation: &schema.Validation{Required: schema.Ptr(true)},
			}},
		}},
	}
}

func TestExecuteNavigation(t *testing.T) {
	exec := NewExecutor()

	result := exec.Execute(context.Background(), "@pushPage:details", ActionContext{})
	require.NotNil(t, result.Navigate)
	assert.Equal(t, NavigatePush, result.Navigate.Op)
	assert.Equal(t, "details", result.Navigate.PageID)
	assert.Nil(t, result.Notification)

	result = exec.Execute(context.Background(), "@popPage", ActionContext{})
	require.NotNil(t, result.Navigate)
	assert.Equal(t, NavigatePop, result.Navigate.Op)

	result = exec.Execute(context.Background(), "@pushPage", ActionContext{})
	assert.Nil(t, result.Navigate)
	assert.Nil(t, result.Notification)
}

func TestExecuteNotifications(t *testing.T) {
	exec := NewExecutor()
	cases := []struct {
		token   Token
		level   Level
		message string
	}{
		{`{"type":"@toast","params":{"message":"Saved"}}`, LevelInfo, "Saved"},
		{`{"type":"@toast"}`, LevelInfo, "Toast message displayed!"},
		{"@toast", LevelInfo, "Toast message displayed!"},
		{"@register", LevelInfo, "Registration initiated!"},
		{`{"type":"@biometricAuth"}`, LevelInfo, "Biometric authentication requested"},
		{`{"type":"@toast",`, LevelInfo, "Action executed!"},
	}
	for _, tc := range cases {
		result := exec.Execute(context.Background(), tc.token, ActionContext{})
		require.NotNil(t, result.Notification, "token %s", tc.token)
		assert.Equal(t, tc.level, result.Notification.Level, "token %s", tc.token)
		assert.Equal(t, tc.message, result.Notification.Message, "token %s", tc.token)
	}
}

func TestExecuteParseFailureIsDegraded(t *testing.T) {
	result := NewExecutor().Execute(context.Background(), `{"type":"@toast",`, ActionContext{})
	var parseErr *ParseError
	require.ErrorAs(t, result.Err, &parseErr)
	assert.Nil(t, result.Navigate)
}

func TestExecuteUnknownTokenIsSilent(t *testing.T) {
	result := NewExecutor().Execute(context.Background(), "@share", ActionContext{})
	assert.Nil(t, result.Notification)
	assert.Nil(t, result.Navigate)
	assert.NoError(t, result.Err)
}

func TestExecuteSubmitFormValidatesCurrentPage(t *testing.T) {
	exec := NewExecutor()
	doc := formSchema()

	result := exec.Execute(context.Background(), "@submitForm", ActionContext{Schema: doc, PageID: "form", FormData: map[string]string{}})
	require.NotNil(t, result.Notification)
	assert.Equal(t, LevelError, result.Notification.Level)
	assert.Contains(t, result.Notification.Message, "Email: cannot be blank")
	require.Len(t, result.Issues, 1)

	result = exec.Execute(context.Background(), `{"type":"@submitForm"}`, ActionContext{Schema: doc, PageID: "form", FormData: map[string]string{"email": "a@b.c"}})
	require.NotNil(t, result.Notification)
	assert.Equal(t, LevelSuccess, result.Notification.Level)
	assert.Equal(t, "Form submitted successfully!", result.Notification.Message)
}

func TestExecuteSubmitWithoutSchemaSucceeds(t *testing.T) {
	result := NewExecutor().Execute(context.Background(), "@submitForm", ActionContext{})
	require.NotNil(t, result.Notification)
	assert.Equal(t, LevelSuccess, result.Notification.Level)
}
