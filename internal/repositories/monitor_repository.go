package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"kds-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MonitorRepository struct {
	DB *pgxpool.Pool
}

func NewMonitorRepository(db *pgxpool.Pool) *MonitorRepository {
	return &MonitorRepository{DB: db}
}

const monitorColumns = `id, location_id, name, type, destinations, courses,
	primary_statuses, secondary_statuses, layout, visible_rows, newest_side,
	auto_serve_on_finish, history_window_minutes,
	show_start_button, show_finish_button, show_serve_button, show_march_button,
	print_on_line_complete, print_on_order_complete,
	style_rules, is_active, created_at, updated_at`

func (r *MonitorRepository) Create(ctx context.Context, m *models.Monitor) error {
	rules, err := json.Marshal(m.StyleRules)
	if err != nil {
		return err
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO monitors(location_id, name, type, destinations, courses,
		     primary_statuses, secondary_statuses, layout, visible_rows, newest_side,
		     auto_serve_on_finish, history_window_minutes,
		     show_start_button, show_finish_button, show_serve_button, show_march_button,
		     print_on_line_complete, print_on_order_complete, style_rules, is_active)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		 RETURNING id, created_at, updated_at`,
		m.LocationID, m.Name, m.Type,
		destinationStrings(m.Destinations), m.Courses,
		statusStrings(m.PrimaryStatuses), statusStrings(m.SecondaryStatuses),
		m.Layout, m.VisibleRows, m.NewestSide,
		m.AutoServeOnFinish, m.HistoryWindowMinutes,
		m.ShowStartButton, m.ShowFinishButton, m.ShowServeButton, m.ShowMarchButton,
		m.PrintOnLineComplete, m.PrintOnOrderComplete, rules, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MonitorRepository) Get(ctx context.Context, id int) (*models.Monitor, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+monitorColumns+` FROM monitors WHERE id=$1`, id)
	m, err := scanMonitor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return m, err
}

func (r *MonitorRepository) ListActive(ctx context.Context, locationID int) ([]*models.Monitor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+monitorColumns+` FROM monitors
		 WHERE location_id=$1 AND is_active=TRUE ORDER BY name`, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var monitors []*models.Monitor
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, err
		}
		monitors = append(monitors, m)
	}
	return monitors, rows.Err()
}

func (r *MonitorRepository) Update(ctx context.Context, m *models.Monitor) error {
	rules, err := json.Marshal(m.StyleRules)
	if err != nil {
		return err
	}
	tag, err := r.DB.Exec(ctx,
		`UPDATE monitors SET location_id=$2, name=$3, type=$4, destinations=$5, courses=$6,
		     primary_statuses=$7, secondary_statuses=$8, layout=$9, visible_rows=$10,
		     newest_side=$11, auto_serve_on_finish=$12, history_window_minutes=$13,
		     show_start_button=$14, show_finish_button=$15, show_serve_button=$16,
		     show_march_button=$17, print_on_line_complete=$18, print_on_order_complete=$19,
		     style_rules=$20, is_active=$21, updated_at=NOW()
		 WHERE id=$1`,
		m.ID, m.LocationID, m.Name, m.Type,
		destinationStrings(m.Destinations), m.Courses,
		statusStrings(m.PrimaryStatuses), statusStrings(m.SecondaryStatuses),
		m.Layout, m.VisibleRows, m.NewestSide,
		m.AutoServeOnFinish, m.HistoryWindowMinutes,
		m.ShowStartButton, m.ShowFinishButton, m.ShowServeButton, m.ShowMarchButton,
		m.PrintOnLineComplete, m.PrintOnOrderComplete, rules, m.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MonitorRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM monitors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanMonitor(row pgx.Row) (*models.Monitor, error) {
	var m models.Monitor
	var destinations, primary, secondary []string
	var rules []byte

	err := row.Scan(&m.ID, &m.LocationID, &m.Name, &m.Type,
		&destinations, &m.Courses, &primary, &secondary,
		&m.Layout, &m.VisibleRows, &m.NewestSide,
		&m.AutoServeOnFinish, &m.HistoryWindowMinutes,
		&m.ShowStartButton, &m.ShowFinishButton, &m.ShowServeButton, &m.ShowMarchButton,
		&m.PrintOnLineComplete, &m.PrintOnOrderComplete,
		&rules, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	m.Destinations = toDestinations(destinations)
	m.PrimaryStatuses = toStatuses(primary)
	m.SecondaryStatuses = toStatuses(secondary)
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &m.StyleRules); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func destinationStrings(in []models.Destination) []string {
	out := make([]string, len(in))
	for i, d := range in {
		out[i] = string(d)
	}
	return out
}

func toDestinations(in []string) []models.Destination {
	out := make([]models.Destination, len(in))
	for i, s := range in {
		out[i] = models.Destination(s)
	}
	return out
}

func statusStrings(in []models.PrepStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func toStatuses(in []string) []models.PrepStatus {
	out := make([]models.PrepStatus, len(in))
	for i, s := range in {
		out[i] = models.PrepStatus(s)
	}
	return out
}
