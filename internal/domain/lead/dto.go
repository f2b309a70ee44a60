// internal/domain/lead/dto.go
package lead

// CreateLeadRequest is the intake form payload: a lead draft without
// id/created_at, both of which the store synthesizes.
type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"max=30"`
	Country string `json:"country" binding:"max=100"`

	Qualification Qualification `json:"qualification" binding:"omitempty,oneof=1 2 3 NoCalif"`
	Origin        Origin        `json:"origin" binding:"required"`
	CallDate      string        `json:"call_date"`

	Website        string `json:"website"`
	DecisionMaker  string `json:"decision_maker"`
	AdSpend        string `json:"ad_spend"`
	MonthlyRevenue string `json:"monthly_revenue"`
	MainProblem    string `json:"main_problem"`

	Setter string `json:"setter"`
	Notes  string `json:"notes"`
	Value  float64 `json:"value"`
}

// ToLead builds the lead the draft describes, applying intake defaults.
// ID and CreatedAt are left zero for the store to fill in.
func (r *CreateLeadRequest) ToLead() Lead {
	qual := r.Qualification
	if qual == "" {
		qual = QualificationLevel1
	}

	return Lead{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Country: r.Country,

		Qualification: qual,
		Status:        StatusNew,
		Origin:        r.Origin,
		CallDate:      r.CallDate,

		Website:        r.Website,
		DecisionMaker:  r.DecisionMaker,
		AdSpend:        r.AdSpend,
		MonthlyRevenue: r.MonthlyRevenue,
		MainProblem:    r.MainProblem,

		WhatsappConfirmed: TriStatePending,
		Attended:          TriStatePending,
		OfferMade:         false,
		Bought:            false,

		Setter: r.Setter,
		Notes:  r.Notes,
		Value:  r.Value,
	}
}

// UpdateLeadRequest carries the full mutable field set of a lead. The
// detail view edits field-by-field but always submits the whole record;
// id comes from the URL and created_at is never accepted from the client.
type UpdateLeadRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"max=30"`
	Country string `json:"country" binding:"max=100"`

	Qualification Qualification `json:"qualification" binding:"omitempty,oneof=1 2 3 NoCalif"`
	Status        Status        `json:"status" binding:"omitempty,oneof=Nuevo Contactado Cerrado"`
	Origin        Origin        `json:"origin"`

	Website        string `json:"website"`
	DecisionMaker  string `json:"decision_maker"`
	AdSpend        string `json:"ad_spend"`
	MonthlyRevenue string `json:"monthly_revenue"`
	MainProblem    string `json:"main_problem"`

	CallDate          string   `json:"call_date"`
	WhatsappConfirmed TriState `json:"whatsapp_confirmed" binding:"omitempty,oneof=Si No Pendiente"`
	Attended          TriState `json:"attended" binding:"omitempty,oneof=Si No Pendiente"`
	NoAttendReason    string   `json:"no_attend_reason"`
	FollowUp          string   `json:"follow_up" binding:"omitempty,oneof=Si No N/A"`
	SecondCall        bool     `json:"second_call"`

	OfferMade     bool          `json:"offer_made"`
	Bought        bool          `json:"bought"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"omitempty,oneof=Contado Cuotas No"`

	CollectedAmount  float64 `json:"collected_amount"`
	Revenue          float64 `json:"revenue"`
	SetterCommission float64 `json:"setter_commission"`
	CloserCommission float64 `json:"closer_commission"`
	Value            float64 `json:"value"`

	FirstPaymentDate string `json:"first_payment_date"`
	ReservationDate  string `json:"reservation_date"`
	FullPaymentDate  string `json:"full_payment_date"`
	DaysToCollect    int    `json:"days_to_collect"`

	Setter string `json:"setter"`
	Closer string `json:"closer"`

	Notes        string `json:"notes"`
	ChatAnalysis string `json:"chat_analysis"`
}

// Apply maps the request onto an existing lead, keeping its identity
// fields untouched.
func (r *UpdateLeadRequest) Apply(existing Lead) Lead {
	updated := existing

	updated.Name = r.Name
	updated.Email = r.Email
	updated.Phone = r.Phone
	updated.Country = r.Country

	updated.Qualification = r.Qualification
	updated.Status = r.Status
	updated.Origin = r.Origin

	updated.Website = r.Website
	updated.DecisionMaker = r.DecisionMaker
	updated.AdSpend = r.AdSpend
	updated.MonthlyRevenue = r.MonthlyRevenue
	updated.MainProblem = r.MainProblem

	updated.CallDate = r.CallDate
	updated.WhatsappConfirmed = r.WhatsappConfirmed
	updated.Attended = r.Attended
	updated.NoAttendReason = r.NoAttendReason
	updated.FollowUp = r.FollowUp
	updated.SecondCall = r.SecondCall

	updated.OfferMade = r.OfferMade
	updated.Bought = r.Bought
	updated.PaymentMethod = r.PaymentMethod

	updated.CollectedAmount = r.CollectedAmount
	updated.Revenue = r.Revenue
	updated.SetterCommission = r.SetterCommission
	updated.CloserCommission = r.CloserCommission
	updated.Value = r.Value

	updated.FirstPaymentDate = r.FirstPaymentDate
	updated.ReservationDate = r.ReservationDate
	updated.FullPaymentDate = r.FullPaymentDate
	updated.DaysToCollect = r.DaysToCollect

	updated.Setter = r.Setter
	updated.Closer = r.Closer

	updated.Notes = r.Notes
	updated.ChatAnalysis = r.ChatAnalysis

	return updated
}

// LeadListFilters are the query params accepted by the list endpoint.
type LeadListFilters struct {
	Range  string `form:"range"`
	Start  string `form:"start"`
	End    string `form:"end"`
	Search string `form:"q"`
}

// LeadListResponse wraps a filtered listing.
type LeadListResponse struct {
	Leads []Lead `json:"leads"`
	Total int    `json:"total"`
}
