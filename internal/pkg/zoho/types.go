package zoho

// Plan is a Zoho Billing subscription tier. Plans are a read-only mirror
// from this service's perspective; plan_code is the natural key.
type Plan struct {
	PlanCode     string  `json:"plan_code"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CurrencyCode string  `json:"currency_code"`
	Interval     string  `json:"interval"`
	IntervalUnit string  `json:"interval_unit"`
	Status       string  `json:"status"`
	PlanID       string  `json:"plan_id"`
}

type Addon struct {
	AddonCode    string  `json:"addon_code"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CurrencyCode string  `json:"currency_code"`
	Status       string  `json:"status"`
}

type CustomerInput struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name,omitempty"`
}

type Customer struct {
	CustomerID  string `json:"customer_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
}

type SubscriptionInput struct {
	CustomerID string `json:"customer_id"`
	PlanCode   string `json:"plan_code,omitempty"`
	Plan       *struct {
		PlanCode string `json:"plan_code"`
	} `json:"plan,omitempty"`
}

type Subscription struct {
	SubscriptionID string `json:"subscription_id"`
	CustomerID     string `json:"customer_id"`
	PlanCode       string `json:"plan_code"`
	Status         string `json:"status"`
}

type pageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}

type plansResponse struct {
	Code        int         `json:"code"`
	Message     string      `json:"message"`
	Plans       []Plan      `json:"plans"`
	PageContext pageContext `json:"page_context"`
}

type planResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Plan    Plan   `json:"plan"`
}

type addonsResponse struct {
	Code        int         `json:"code"`
	Message     string      `json:"message"`
	Addons      []Addon     `json:"addons"`
	PageContext pageContext `json:"page_context"`
}

type customerResponse struct {
	Code     int      `json:"code"`
	Message  string   `json:"message"`
	Customer Customer `json:"customer"`
}

type subscriptionResponse struct {
	Code         int          `json:"code"`
	Message      string       `json:"message"`
	Subscription Subscription `json:"subscription"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	APIDomain   string `json:"api_domain"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
