package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	KindName Kind = iota
	KindPush
	KindPop
	KindEncoded
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindEncoded:
		return "encoded"
	default:
		return "name"
	}
}

// Parsed is a classified token.
type Parsed struct {
	Token Token
	Kind  Kind
	// PageID is the push target, empty for a bare @pushPage.
	PageID string
	// Type is the action type for name and encoded tokens.
	Type string
	// Params holds the decoded params of an encoded token.
	Params map[string]any
}

// ParseError reports an encoded token that cannot be decoded.
type ParseError struct {
	Token Token
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("actions: parse token %q: %v", string(e.Token), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseToken classifies token. Tokens beginning with "{" are decoded as JSON
// objects; a decode failure yields a *ParseError along with a Parsed of kind
// KindEncoded and an empty type.
func ParseToken(token Token) (Parsed, error) {
	text := string(token)
	switch {
	case text == PopPage:
		return Parsed{Token: token, Kind: KindPop, Type: PopPage}, nil
	case text == PushPage:
		return Parsed{Token: token, Kind: KindPush, Type: PushPage}, nil
	case strings.HasPrefix(text, pushPrefix):
		id, _ := strings.CutPrefix(text, pushPrefix)
		return Parsed{Token: token, Kind: KindPush, Type: PushPage, PageID: id}, nil
	case strings.HasPrefix(strings.TrimSpace(text), "{"):
		return parseEncoded(token)
	default:
		return Parsed{Token: token, Kind: KindName, Type: text}, nil
	}
}

func parseEncoded(token Token) (Parsed, error) {
	parsed := Parsed{Token: token, Kind: KindEncoded}

	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader([]byte(token)))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return parsed, &ParseError{Token: token, Err: err}
	}
	actionType, ok := body["type"].(string)
	if !ok {
		return parsed, &ParseError{Token: token, Err: fmt.Errorf("missing type")}
	}
	parsed.Type = actionType
	parsed.Params, _ = body["params"].(map[string]any)
	return parsed, nil
}
