package calls

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	sql, args := buildWhere(&Filter{}, lowerColumn).sql()
	require.Equal(t, "", sql)
	require.Nil(t, args)

	sql, args = buildWhere(&Filter{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Filiere:   "Gestion",
		Critere:   "interne",
		Pigier:    "oui",
		Maitrise:  "non",
	}, lowerColumn).sql()
	require.Equal(t, " WHERE date >= ? AND date <= ? AND filiere = ? AND critere = ?"+
		" AND deja_pigier = ? AND LOWER(maitrise_info) = ?", sql)
	require.Equal(t, []interface{}{"2024-01-01", "2024-01-31", "Gestion", "interne", 1, "non"}, args)

	// unknown tri-state values do not constrain
	sql, _ = buildWhere(&Filter{Pigier: "maybe", Maitrise: "OUI"}, lowerColumn).sql()
	require.Equal(t, "", sql)

	sql, args = buildWhere(&Filter{Q: "Éloi", Pigier: "non"}, lowerColumn).sql()
	require.Contains(t, sql, "deja_pigier = ? AND (LOWER(appelant) LIKE ?")
	require.Contains(t, sql, "date LIKE ? OR heure LIKE ?)")
	require.Equal(t, 1+len(searchColumns)+2, len(args))
	require.Equal(t, 0, args[0])
	require.Equal(t, "%eloi%", args[1])
	require.Equal(t, "%Éloi%", args[len(args)-1])

	fold := func(col string) string { return "fold(" + col + ")" }
	sql, _ = buildWhere(&Filter{Q: "x"}, fold).sql()
	require.Contains(t, sql, "(fold(appelant) LIKE ? OR fold(appele) LIKE ?")
	require.NotContains(t, sql, "LOWER(")
}

func TestOrderBy(t *testing.T) {
	require.Equal(t, "date DESC, heure DESC", orderBy(""))
	require.Equal(t, "date DESC, heure DESC", orderBy("bogus"))
	require.Equal(t, "date ASC, heure ASC", orderBy("date_asc"))
	require.Equal(t, "created_at DESC", orderBy("created_desc"))
	require.Equal(t, "created_at ASC", orderBy("created_asc"))
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		page, size       string
		wantPage, wantSz int
		wantOffset       int
	}{
		{"", "", 1, DefaultPageSize, 0},
		{"3", "10", 3, 10, 20},
		{"0", "0", 1, 1, 0},
		{"-4", "10000", 1, MaxPageSize, 0},
		{"abc", "xyz", 1, DefaultPageSize, 0},
		{"2", "-5", 2, 1, 1},
		{"922337203685477580", "20", maxPage, 20, (maxPage - 1) * 20},
	}
	for _, test := range tests {
		p, sz, off := pageBounds(test.page, test.size)
		require.Equal(t, test.wantPage, p, "page %q", test.page)
		require.Equal(t, test.wantSz, sz, "size %q", test.size)
		require.Equal(t, test.wantOffset, off)
	}
}

func TestSimpleLimit(t *testing.T) {
	require.Equal(t, DefaultSimpleLimit, simpleLimit(""))
	require.Equal(t, DefaultSimpleLimit, simpleLimit("0"))
	require.Equal(t, DefaultSimpleLimit, simpleLimit("many"))
	require.Equal(t, 1, simpleLimit("-3"))
	require.Equal(t, 42, simpleLimit("42"))
	require.Equal(t, MaxSimpleLimit, simpleLimit("5000"))
}

func TestFoldQuery(t *testing.T) {
	require.Equal(t, "eleve", foldQuery("  ÉLÈVE "))
	require.Equal(t, "francois", foldQuery("François"))
	require.Equal(t, "0600", foldQuery("0600"))
}

func TestShortTime(t *testing.T) {
	require.Equal(t, "09:30", shortTime("09:30:15"))
	require.Equal(t, "09:30", shortTime("09:30"))
	require.Equal(t, "09:30", shortTime("9:30"))
	require.Equal(t, "09:30", shortTime("9:30:00"))
	require.Equal(t, "midi", shortTime("midi"))
}

func TestNormalizeHeure(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:30", "09:30", true},
		{"9:30", "09:30", true},
		{"9:30:00", "09:30:00", true},
		{" 23:59:59 ", "23:59:59", true},
		{"00:00", "00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"12:5", "", false},
		{"093:00", "", false},
		{"+9:30", "", false},
		{"9h30", "", false},
		{"12:30:00:00", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		got, ok := normalizeHeure(test.in)
		require.Equal(t, test.ok, ok, "heure %q", test.in)
		require.Equal(t, test.want, got, "heure %q", test.in)
	}
}

func TestTextDecode(t *testing.T) {
	in := Input{}
	err := json.Unmarshal([]byte(`{"appele":"Marie","contact":600000000}`), &in)
	require.Nil(t, err)
	require.Equal(t, Text("Marie"), in.Appele)
	require.Equal(t, Text("600000000"), in.Contact)

	in = Input{}
	require.Nil(t, json.Unmarshal([]byte(`{"contact":null,"appele":"0102.5"}`), &in))
	require.Equal(t, Text(""), in.Contact)

	require.NotNil(t, json.Unmarshal([]byte(`{"contact":{"n":1}}`), &in))
	require.NotNil(t, json.Unmarshal([]byte(`{"contact":true}`), &in))
}

func TestIsAll(t *testing.T) {
	require.True(t, isAll("1"))
	require.True(t, isAll("true"))
	require.False(t, isAll("yes"))
	require.False(t, isAll(""))
}
