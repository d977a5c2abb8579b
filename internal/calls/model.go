package calls

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Call is one call-log row as returned by the API.
type Call struct {
	ID             int64   `json:"id" db:"id"`
	Date           string  `json:"date" db:"date"`
	Heure          string  `json:"heure" db:"heure"`
	Appelant       *string `json:"appelant" db:"appelant"`
	Appele         string  `json:"appele" db:"appele"`
	Contact        string  `json:"contact" db:"contact"`
	Filiere        *string `json:"filiere" db:"filiere"`
	Critere        *string `json:"critere" db:"critere"`
	DejaPigier     bool    `json:"dejaPigier" db:"deja_pigier"`
	MaitriseInfo   string  `json:"maitriseInfo" db:"maitrise_info"`
	DernierDiplome string  `json:"dernierDiplome" db:"dernier_diplome"`
	CreatedAt      string  `json:"createdAt,omitempty" db:"created_at"`
}

// Input is the request body for create and update. CreatedAt is only
// honoured on create.
type Input struct {
	Date           string  `json:"date"`
	Heure          string  `json:"heure"`
	Appelant       *string `json:"appelant"`
	Appele         Text    `json:"appele"`
	Contact        Text    `json:"contact"`
	Filiere        *string `json:"filiere"`
	Critere        *string `json:"critere"`
	DejaPigier     Truthy  `json:"dejaPigier"`
	MaitriseInfo   string  `json:"maitriseInfo"`
	DernierDiplome string  `json:"dernierDiplome"`
	CreatedAt      string  `json:"createdAt"`
}

// Truthy decodes any JSON value into a bool: false, 0, "" and null are
// false, everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(x)
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		*t = true
	}
	return nil
}

// Text decodes a JSON string or number into a string, so a phone number
// sent as 600000000 is kept as "600000000". null decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case json.Number:
		*t = Text(x.String())
	default:
		return fmt.Errorf("expected string or number, got %s", b)
	}
	return nil
}

// Filter holds the optional list query parameters, kept as raw strings
// so malformed numbers fall back to defaults instead of failing.
type Filter struct {
	Q         string `query:"q"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Filiere   string `query:"filiere"`
	Critere   string `query:"critere"`
	Pigier    string `query:"pigier"`
	Maitrise  string `query:"maitrise"`
	Page      string `query:"page"`
	PageSize  string `query:"pageSize"`
	Sort      string `query:"sort"`
	All       string `query:"all"`
}

// Page is the List response.
type Page struct {
	Total    int64  `json:"total"`
	TotalAll int64  `json:"totalAll"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Data     []Call `json:"data"`
}
