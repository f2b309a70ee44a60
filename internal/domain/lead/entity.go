// internal/domain/lead/entity.go
package lead

import (
	"time"
)

// Status is the pipeline stage of a lead. Wire values are the Spanish
// labels the dashboard and the leads table already use.
type Status string

const (
	StatusNew       Status = "Nuevo"
	StatusContacted Status = "Contactado"
	StatusClosed    Status = "Cerrado"
)

// Origin is the acquisition channel a lead entered through.
type Origin string

const (
	OriginSetting   Origin = "Setting"
	OriginDirect    Origin = "Agenda Directa"
	OriginTikTok    Origin = "TikTok"
	OriginReferral  Origin = "Referral"
	OriginInstagram Origin = "Instagram"
	OriginYouTube   Origin = "YouTube"
)

// AllOrigins returns every origin in display order. Origin breakdowns
// iterate this list so channels with zero leads are still computed.
func AllOrigins() []Origin {
	return []Origin{
		OriginSetting,
		OriginDirect,
		OriginTikTok,
		OriginReferral,
		OriginInstagram,
		OriginYouTube,
	}
}

// Qualification is the priority tier assigned at intake.
type Qualification string

const (
	QualificationLevel1  Qualification = "1"
	QualificationLevel2  Qualification = "2"
	QualificationLevel3  Qualification = "3"
	QualificationNoCalif Qualification = "NoCalif"
)

// TriState covers the Si/No/Pendiente tracking columns.
type TriState string

const (
	TriStateYes     TriState = "Si"
	TriStateNo      TriState = "No"
	TriStatePending TriState = "Pendiente"
)

// PaymentMethod is how a closed sale is being paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Contado"
	PaymentInstallments PaymentMethod = "Cuotas"
	PaymentNone         PaymentMethod = "No"
)

// Lead is one row of the remote leads table. ID is assigned client-side
// at creation and is the primary key; CreatedAt never changes after
// creation. Every other field is mutable through a full-record update.
type Lead struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Contact
	Email   string `json:"email,omitempty" db:"email"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Country string `json:"country,omitempty" db:"country"`

	// Classification
	Qualification Qualification `json:"qualification,omitempty" db:"qualification"`
	Status        Status        `json:"status" db:"status"`
	Origin        Origin        `json:"origin" db:"origin"`

	// Intake form
	Website        string `json:"website,omitempty" db:"website"`
	DecisionMaker  string `json:"decision_maker,omitempty" db:"decision_maker"`
	AdSpend        string `json:"ad_spend,omitempty" db:"ad_spend"`
	MonthlyRevenue string `json:"monthly_revenue,omitempty" db:"monthly_revenue"`
	MainProblem    string `json:"main_problem,omitempty" db:"main_problem"`

	// Scheduling and attendance. CallDate is a plain YYYY-MM-DD string,
	// same as the form input that produces it.
	CallDate          string   `json:"call_date,omitempty" db:"call_date"`
	WhatsappConfirmed TriState `json:"whatsapp_confirmed,omitempty" db:"whatsapp_confirmed"`
	Attended          TriState `json:"attended,omitempty" db:"attended"`
	NoAttendReason    string   `json:"no_attend_reason,omitempty" db:"no_attend_reason"`
	FollowUp          string   `json:"follow_up,omitempty" db:"follow_up"`
	SecondCall        bool     `json:"second_call" db:"second_call"`

	// Sales outcome
	OfferMade     bool          `json:"offer_made" db:"offer_made"`
	Bought        bool          `json:"bought" db:"bought"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty" db:"payment_method"`

	// Financials (absent means 0)
	CollectedAmount  float64 `json:"collected_amount" db:"collected_amount"`
	Revenue          float64 `json:"revenue" db:"revenue"`
	SetterCommission float64 `json:"setter_commission" db:"setter_commission"`
	CloserCommission float64 `json:"closer_commission" db:"closer_commission"`
	Value            float64 `json:"value" db:"value"`

	// Collection timeline
	FirstPaymentDate string `json:"first_payment_date,omitempty" db:"first_payment_date"`
	ReservationDate  string `json:"reservation_date,omitempty" db:"reservation_date"`
	FullPaymentDate  string `json:"full_payment_date,omitempty" db:"full_payment_date"`
	DaysToCollect    int    `json:"days_to_collect" db:"days_to_collect"`

	// Personnel attribution. Empty means unassigned.
	Setter string `json:"setter,omitempty" db:"setter"`
	Closer string `json:"closer,omitempty" db:"closer"`

	// Free text
	Notes        string `json:"notes" db:"notes"`
	ChatAnalysis string `json:"chat_analysis,omitempty" db:"chat_analysis"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
