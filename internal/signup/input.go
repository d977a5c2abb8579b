package signup

import (
	"fmt"
)

// Accepted body keys per field, in priority order.
var (
	nomAliases      = []string{"Nom", "name", "nom"}
	emailAliases    = []string{"Email", "email"}
	passwordAliases = []string{"Password", "password"}
)

// Input is the canonical signup request.
type Input struct {
	Nom      string
	Email    string
	Password string
}

// InputFromBody resolves the aliased keys of a decoded JSON body. The
// first alias holding a non-null value wins.
func InputFromBody(body map[string]interface{}) *Input {
	return &Input{
		Nom:      firstOf(body, nomAliases),
		Email:    firstOf(body, emailAliases),
		Password: firstOf(body, passwordAliases),
	}
}

func firstOf(body map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		v, ok := body[key]
		if !ok || v == nil {
			continue
		}
		switch x := v.(type) {
		case string:
			return x
		case bool:
			if !x {
				return ""
			}
		case float64:
			if x == 0 {
				return ""
			}
		}
		return fmt.Sprint(v)
	}
	return ""
}
