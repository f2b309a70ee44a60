// internal/repository/postgres/lead_repo.go
package postgres

import (
	"context"
	"fmt"

	"llamacrm-service/internal/domain/lead"
	xerrors "llamacrm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadRepository is the remote table adapter for the leads table. It
// exposes exactly the operations the collection store needs: list all
// rows newest first, insert one row, update one row by id. There is no
// delete and no server-side filtering; the full set is always loaded
// and narrowed client-side.
type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `
	id, name,
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(country, ''),
	COALESCE(qualification, ''), status, origin,
	COALESCE(website, ''), COALESCE(decision_maker, ''),
	COALESCE(ad_spend, ''), COALESCE(monthly_revenue, ''),
	COALESCE(main_problem, ''),
	COALESCE(call_date, ''), COALESCE(whatsapp_confirmed, ''),
	COALESCE(attended, ''), COALESCE(no_attend_reason, ''),
	COALESCE(follow_up, ''), COALESCE(second_call, false),
	COALESCE(offer_made, false), COALESCE(bought, false),
	COALESCE(payment_method, ''),
	COALESCE(collected_amount, 0), COALESCE(revenue, 0),
	COALESCE(setter_commission, 0), COALESCE(closer_commission, 0),
	COALESCE(value, 0),
	COALESCE(first_payment_date, ''), COALESCE(reservation_date, ''),
	COALESCE(full_payment_date, ''), COALESCE(days_to_collect, 0),
	COALESCE(setter, ''), COALESCE(closer, ''),
	COALESCE(notes, ''), COALESCE(chat_analysis, ''),
	created_at
`

// List returns every lead ordered by created_at descending.
func (r *LeadRepository) List(ctx context.Context) ([]lead.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads ORDER BY created_at DESC`, leadColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, xerrors.NewStoreError("list", err)
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(
			&l.ID, &l.Name,
			&l.Email, &l.Phone, &l.Country,
			&l.Qualification, &l.Status, &l.Origin,
			&l.Website, &l.DecisionMaker,
			&l.AdSpend, &l.MonthlyRevenue,
			&l.MainProblem,
			&l.CallDate, &l.WhatsappConfirmed,
			&l.Attended, &l.NoAttendReason,
			&l.FollowUp, &l.SecondCall,
			&l.OfferMade, &l.Bought,
			&l.PaymentMethod,
			&l.CollectedAmount, &l.Revenue,
			&l.SetterCommission, &l.CloserCommission,
			&l.Value,
			&l.FirstPaymentDate, &l.ReservationDate,
			&l.FullPaymentDate, &l.DaysToCollect,
			&l.Setter, &l.Closer,
			&l.Notes, &l.ChatAnalysis,
			&l.CreatedAt,
		); err != nil {
			return nil, xerrors.NewStoreError("list", fmt.Errorf("failed to scan lead: %w", err))
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.NewStoreError("list", err)
	}

	return leads, nil
}

// Insert persists a new lead. The id and created_at are client-assigned
// and written as-is; the table never reassigns them.
func (r *LeadRepository) Insert(ctx context.Context, l *lead.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, country,
			qualification, status, origin,
			website, decision_maker, ad_spend, monthly_revenue, main_problem,
			call_date, whatsapp_confirmed, attended, no_attend_reason,
			follow_up, second_call,
			offer_made, bought, payment_method,
			collected_amount, revenue, setter_commission, closer_commission, value,
			first_payment_date, reservation_date, full_payment_date, days_to_collect,
			setter, closer, notes, chat_analysis, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19,
			$20, $21, $22,
			$23, $24, $25, $26, $27,
			$28, $29, $30, $31,
			$32, $33, $34, $35, $36
		)
	`

	_, err := r.db.Exec(
		ctx, query,
		l.ID, l.Name, l.Email, l.Phone, l.Country,
		l.Qualification, l.Status, l.Origin,
		l.Website, l.DecisionMaker, l.AdSpend, l.MonthlyRevenue, l.MainProblem,
		l.CallDate, l.WhatsappConfirmed, l.Attended, l.NoAttendReason,
		l.FollowUp, l.SecondCall,
		l.OfferMade, l.Bought, l.PaymentMethod,
		l.CollectedAmount, l.Revenue, l.SetterCommission, l.CloserCommission, l.Value,
		l.FirstPaymentDate, l.ReservationDate, l.FullPaymentDate, l.DaysToCollect,
		l.Setter, l.Closer, l.Notes, l.ChatAnalysis, l.CreatedAt,
	)
	if err != nil {
		return xerrors.NewStoreError("insert", err)
	}

	return nil
}

// Update persists the full record keyed by id. created_at is immutable
// and deliberately absent from the SET list.
func (r *LeadRepository) Update(ctx context.Context, id string, l *lead.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, country = $5,
			qualification = $6, status = $7, origin = $8,
			website = $9, decision_maker = $10, ad_spend = $11,
			monthly_revenue = $12, main_problem = $13,
			call_date = $14, whatsapp_confirmed = $15, attended = $16,
			no_attend_reason = $17, follow_up = $18, second_call = $19,
			offer_made = $20, bought = $21, payment_method = $22,
			collected_amount = $23, revenue = $24,
			setter_commission = $25, closer_commission = $26, value = $27,
			first_payment_date = $28, reservation_date = $29,
			full_payment_date = $30, days_to_collect = $31,
			setter = $32, closer = $33, notes = $34, chat_analysis = $35
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		id, l.Name, l.Email, l.Phone, l.Country,
		l.Qualification, l.Status, l.Origin,
		l.Website, l.DecisionMaker, l.AdSpend,
		l.MonthlyRevenue, l.MainProblem,
		l.CallDate, l.WhatsappConfirmed, l.Attended,
		l.NoAttendReason, l.FollowUp, l.SecondCall,
		l.OfferMade, l.Bought, l.PaymentMethod,
		l.CollectedAmount, l.Revenue,
		l.SetterCommission, l.CloserCommission, l.Value,
		l.FirstPaymentDate, l.ReservationDate,
		l.FullPaymentDate, l.DaysToCollect,
		l.Setter, l.Closer, l.Notes, l.ChatAnalysis,
	)
	if err != nil {
		return xerrors.NewStoreError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.NewStoreError("update", xerrors.ErrNotFound)
	}

	return nil
}
