package inserts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ofods/internal/config"
)

func TestStatement_Customer(t *testing.T) {
	got := Statement("Customers",
		[]string{"Customer_ID", "First_Name", "Last_Name"},
		[]string{"7", "Ana", "Lopez"},
		config.QuoteRaw)
	assert.Equal(t, "INSERT INTO Customers (Customer_ID, First_Name, Last_Name) VALUES ('7', 'Ana', 'Lopez');", got)
}

/*
TestStatement_EmbeddedQuote pins the raw-mode behavior for a value holding a
single quote: the value is embedded verbatim and the statement is left with
an unbalanced quote. Escape mode doubles the quote instead.
*/
func TestStatement_EmbeddedQuote(t *testing.T) {
	cols := []string{"Review_ID", "Comments"}
	vals := []string{"3", "Didn't arrive"}

	raw := Statement("Reviews_Ratings", cols, vals, config.QuoteRaw)
	assert.Equal(t, "INSERT INTO Reviews_Ratings (Review_ID, Comments) VALUES ('3', 'Didn't arrive');", raw)
	assert.Equal(t, 1, strings.Count(raw, "'")%2, "raw mode leaves an unbalanced quote")

	escaped := Statement("Reviews_Ratings", cols, vals, config.QuoteEscape)
	assert.Equal(t, "INSERT INTO Reviews_Ratings (Review_ID, Comments) VALUES ('3', 'Didn''t arrive');", escaped)
	assert.Equal(t, 0, strings.Count(escaped, "'")%2)
}

func TestStatement_EmptyAndTypedValuesAreQuoted(t *testing.T) {
	got := Statement("Orders", []string{"Order_ID", "Total_Cost", "Delivered"}, []string{"10", "12.5", ""}, config.QuoteRaw)
	assert.Equal(t, "INSERT INTO Orders (Order_ID, Total_Cost, Delivered) VALUES ('10', '12.5', '');", got)
}
