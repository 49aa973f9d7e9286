package model

// Option is an entry of a fixed lookup list.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var TaxStatusOptions = []Option{
	{ID: 1, Name: "Taxable"},
	{ID: 2, Name: "Exempt"},
	{ID: 3, Name: "Non-GST"},
}

var GSTRateOptions = []Option{
	{ID: 1, Name: "0% GST"},
	{ID: 2, Name: "1.25% GST"},
	{ID: 3, Name: "3% GST"},
	{ID: 4, Name: "5% GST"},
	{ID: 5, Name: "12% GST"},
	{ID: 6, Name: "18% GST"},
	{ID: 7, Name: "28% GST"},
}
