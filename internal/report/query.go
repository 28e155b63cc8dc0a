package report

import "strings"

// Kind controls how a column value is rendered.
type Kind int

const (
	// KindText renders the value as scanned; NULL renders as "NULL".
	KindText Kind = iota
	// KindMoney renders a numeric value as "$" followed by two decimals.
	KindMoney
)

// Column is one output column of a report query.
type Column struct {
	Name string
	Kind Kind
}

// Query is one report section: a title, its columns, and the SQL that
// produces them. The SQL must return exactly len(Columns) columns.
type Query struct {
	Title   string
	Columns []Column
	SQL     string
}

// Header returns the column names joined the same way as row values.
func (q Query) Header() string {
	names := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, FieldSep)
}

// The queries use COALESCE instead of a vendor null function so the same text
// runs on every supported backend. Each ORDER BY ends with a tie-break on a
// key column so repeated runs over unchanged data list rows identically.
var (
	CustomerOrders = Query{
		Title: "Total Orders Per Customer",
		Columns: []Column{
			{Name: "Customer_ID"},
			{Name: "First_Name"},
			{Name: "Last_Name"},
			{Name: "Total_Orders"},
		},
		SQL: `SELECT C.Customer_ID, C.First_Name, C.Last_Name, COUNT(O.Order_ID) AS Total_Orders
FROM Customers C
LEFT JOIN Orders O ON C.Customer_ID = O.Customer_ID
GROUP BY C.Customer_ID, C.First_Name, C.Last_Name
ORDER BY Total_Orders DESC, C.Customer_ID`,
	}

	TopMenuItems = Query{
		Title: "Most Ordered Menu Items",
		Columns: []Column{
			{Name: "Menu_Item"},
			{Name: "Restaurant"},
			{Name: "Times_Ordered"},
		},
		SQL: `SELECT MI.Name AS Menu_Item, R.Name AS Restaurant, COUNT(OI.Menu_Item_ID) AS Times_Ordered
FROM Order_Items OI
JOIN Menu_Items MI ON OI.Menu_Item_ID = MI.Menu_Item_ID
JOIN Restaurants R ON MI.Restaurant_ID = R.Restaurant_ID
GROUP BY MI.Name, R.Name
ORDER BY Times_Ordered DESC, Menu_Item, Restaurant`,
	}

	RestaurantRevenue = Query{
		Title: "Revenue Generated Per Restaurant",
		Columns: []Column{
			{Name: "Restaurant_ID"},
			{Name: "Restaurant_Name"},
			{Name: "Total_Revenue", Kind: KindMoney},
		},
		SQL: `SELECT R.Restaurant_ID, R.Name AS Restaurant_Name, COALESCE(SUM(P.Amount), 0) AS Total_Revenue
FROM Restaurants R
LEFT JOIN Menu_Items MI ON R.Restaurant_ID = MI.Restaurant_ID
LEFT JOIN Order_Items OI ON MI.Menu_Item_ID = OI.Menu_Item_ID
LEFT JOIN Orders O ON OI.Order_ID = O.Order_ID
LEFT JOIN Payments P ON O.Order_ID = P.Order_ID
GROUP BY R.Restaurant_ID, R.Name
ORDER BY Total_Revenue DESC, R.Restaurant_ID`,
	}
)

// Queries returns the report sections in output order.
func Queries() []Query {
	return []Query{CustomerOrders, TopMenuItems, RestaurantRevenue}
}
