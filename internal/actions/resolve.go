// Package actions turns component actions into canonical tokens and executes
// tokens into describable results.
package actions

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sdui/internal/schema"
)

// Token is the canonical string form of an action handed to executors.
type Token string

const (
	PushPage      = "@pushPage"
	PopPage       = "@popPage"
	SubmitForm    = "@submitForm"
	BiometricAuth = "@biometricAuth"
	Toast         = "@toast"
	Register      = "@register"
)

const pushPrefix = PushPage + ":"

// Resolve normalizes a component action into a token. The boolean is false
// when there is nothing to dispatch.
//
// Object and encoded actions share one path: @pushPage resolves to
// "@pushPage:<id>", @popPage to itself, @submitForm, @biometricAuth and @toast
// to the compact JSON of the whole object, and any other type to the bare type
// with its params dropped. Plain names pass through verbatim.
func Resolve(action *schema.Action) (Token, bool) {
	if action == nil {
		return "", false
	}
	if action.Kind() == schema.ActionName {
		if action.Text() == "" {
			return "", false
		}
		return Token(action.Text()), true
	}

	actionType := action.Type()
	switch actionType {
	case "":
		return "", false
	case PushPage:
		if id := pushTarget(action); id != "" {
			return Token(pushPrefix + id), true
		}
		return Token(PushPage), true
	case PopPage:
		return Token(PopPage), true
	case SubmitForm, BiometricAuth, Toast:
		return Token(action.JSON()), true
	default:
		return Token(actionType), true
	}
}

// pushTarget reads params.pageId, then params.page_id, then a top-level pageId.
func pushTarget(action *schema.Action) string {
	params := action.Params()
	if id := idString(params["pageId"]); id != "" {
		return id
	}
	if id := idString(params["page_id"]); id != "" {
		return id
	}
	value, _ := action.Field("pageId")
	return idString(value)
}

func idString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case json.Number:
		if typed.String() == "0" {
			return ""
		}
		return typed.String()
	case float64:
		if typed == 0 {
			return ""
		}
		return fmt.Sprint(typed)
	case int:
		if typed == 0 {
			return ""
		}
		return fmt.Sprint(typed)
	default:
		return ""
	}
}
