package attio

// Collection is a named, schema-typed container of records in the Attio
// workspace.
type Collection struct {
	ID           string `json:"id"`
	APIID        string `json:"api_id"`
	Title        string `json:"title"`
	SingularNoun string `json:"singular_noun"`
	PluralNoun   string `json:"plural_noun"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
}

type CollectionInput struct {
	APIID        string `json:"api_id"`
	SingularNoun string `json:"singular_noun"`
	PluralNoun   string `json:"plural_noun"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
}

type Attribute struct {
	APIID       string `json:"api_id"`
	Title       string `json:"title"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
}

type AttributeInput struct {
	APIID       string `json:"api_id"`
	Title       string `json:"title"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
}

// Price is the destination currency shape: a plain amount plus an ISO
// currency code.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// EntryValues is the service record field set mirrored from a Zoho plan.
type EntryValues struct {
	PlanCode    string `json:"plan_code"`
	PlanName    string `json:"plan_name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Interval    string `json:"interval"`
	Status      string `json:"status"`
	ZohoPlanID  string `json:"zoho_plan_id"`
}

// Entry is one record inside a collection.
type Entry struct {
	ID     string      `json:"id"`
	Values EntryValues `json:"values"`
}

type entryInput struct {
	Values EntryValues `json:"values"`
}

type entriesResponse struct {
	Data []Entry `json:"data"`
}

type collectionsResponse struct {
	Data []Collection `json:"data"`
}
