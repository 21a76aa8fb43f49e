package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notch-0314/heattech-backend/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, u *internal.User) error {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (user_name, email, password, oura_id, type_id, occupation_id, overtime_id, create_datetime, update_datetime)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING user_id`,
		u.UserName, u.Email, u.Password, u.OuraID, u.TypeID, u.OccupationID, u.OvertimeID,
		u.CreateDatetime, u.UpdateDatetime).Scan(&u.UserID)
	if err != nil {
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUserByName(ctx context.Context, userName string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT user_id, user_name, email, password, oura_id, type_id, occupation_id, overtime_id, create_datetime, update_datetime
		 FROM users WHERE user_name = $1`, userName)
	var u internal.User
	err := row.Scan(&u.UserID, &u.UserName, &u.Email, &u.Password, &u.OuraID, &u.TypeID,
		&u.OccupationID, &u.OvertimeID, &u.CreateDatetime, &u.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT user_id, user_name, email, password, oura_id, type_id, occupation_id, overtime_id, create_datetime, update_datetime
		 FROM users ORDER BY user_id`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []internal.User
	for rows.Next() {
		var u internal.User
		err := rows.Scan(&u.UserID, &u.UserName, &u.Email, &u.Password, &u.OuraID, &u.TypeID,
			&u.OccupationID, &u.OvertimeID, &u.CreateDatetime, &u.UpdateDatetime)
		if err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- CopingMasterRepository ---

func (p *PostgresStorage) FindCoping(ctx context.Context, typeName string, scoreID, timeValue int) ([]internal.CopingMaster, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT coping_master_id, type_no, type_name, score_id, time, tone, rest_type, how_to_rest, create_datetime, update_datetime
		 FROM coping_master WHERE type_name = $1 AND score_id = $2 AND time = $3 ORDER BY coping_master_id`,
		typeName, scoreID, timeValue)
	if err != nil {
		p.logger.Errorf("failed to query coping_master: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []internal.CopingMaster
	for rows.Next() {
		var m internal.CopingMaster
		err := rows.Scan(&m.CopingMasterID, &m.TypeNo, &m.TypeName, &m.ScoreID, &m.Time,
			&m.Tone, &m.RestType, &m.HowToRest, &m.CreateDatetime, &m.UpdateDatetime)
		if err != nil {
			p.logger.Errorf("failed to scan coping_master row: %v", err)
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

func (p *PostgresStorage) ReplaceAll(ctx context.Context, records []internal.CopingMaster) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM coping_master`); err != nil {
		p.logger.Errorf("failed to clear coping_master: %v", err)
		return err
	}
	for _, m := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO coping_master (type_no, type_name, score_id, time, tone, rest_type, how_to_rest, create_datetime, update_datetime)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.TypeNo, m.TypeName, m.ScoreID, m.Time, m.Tone, m.RestType, m.HowToRest,
			m.CreateDatetime, m.UpdateDatetime)
		if err != nil {
			p.logger.Errorf("failed to insert coping_master row: %v", err)
			return err
		}
	}
	return tx.Commit(ctx)
}

// --- CopingMessageRepository ---

func (p *PostgresStorage) SaveCopingMessage(ctx context.Context, m *internal.CopingMessage) error {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO coping_messages (user_id, assistant_text, coping_message_text, satisfaction_score, heart_rate_before, heart_rate_after, create_datetime, update_datetime)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING coping_message_id`,
		m.UserID, m.AssistantText, m.CopingMessageText, m.SatisfactionScore,
		m.HeartRateBefore, m.HeartRateAfter, m.CreateDatetime, m.UpdateDatetime).Scan(&m.CopingMessageID)
	if err != nil {
		p.logger.Errorf("failed to insert coping message: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetCopingMessage(ctx context.Context, copingMessageID int64) (*internal.CopingMessage, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT coping_message_id, user_id, assistant_text, coping_message_text, satisfaction_score, heart_rate_before, heart_rate_after, create_datetime, update_datetime
		 FROM coping_messages WHERE coping_message_id = $1`, copingMessageID)
	var m internal.CopingMessage
	err := row.Scan(&m.CopingMessageID, &m.UserID, &m.AssistantText, &m.CopingMessageText,
		&m.SatisfactionScore, &m.HeartRateBefore, &m.HeartRateAfter, &m.CreateDatetime, &m.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query coping message: %v", err)
		return nil, err
	}
	return &m, nil
}

func (p *PostgresStorage) ListCopingMessagesForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error) {
	return p.listCopingMessages(ctx,
		`SELECT coping_message_id, user_id, assistant_text, coping_message_text, satisfaction_score, heart_rate_before, heart_rate_after, create_datetime, update_datetime
		 FROM coping_messages WHERE user_id = $1 AND create_datetime::date = $2::date ORDER BY coping_message_id`,
		userID, day)
}

func (p *PostgresStorage) ListFeedbackForDay(ctx context.Context, userID int64, day string) ([]internal.CopingMessage, error) {
	return p.listCopingMessages(ctx,
		`SELECT coping_message_id, user_id, assistant_text, coping_message_text, satisfaction_score, heart_rate_before, heart_rate_after, create_datetime, update_datetime
		 FROM coping_messages WHERE user_id = $1 AND create_datetime::date = $2::date AND satisfaction_score IS NOT NULL ORDER BY coping_message_id`,
		userID, day)
}

func (p *PostgresStorage) listCopingMessages(ctx context.Context, query string, args ...any) ([]internal.CopingMessage, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query coping messages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var messages []internal.CopingMessage
	for rows.Next() {
		var m internal.CopingMessage
		err := rows.Scan(&m.CopingMessageID, &m.UserID, &m.AssistantText, &m.CopingMessageText,
			&m.SatisfactionScore, &m.HeartRateBefore, &m.HeartRateAfter, &m.CreateDatetime, &m.UpdateDatetime)
		if err != nil {
			p.logger.Errorf("failed to scan coping message: %v", err)
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (p *PostgresStorage) SetHeartRateBefore(ctx context.Context, copingMessageID int64, bpm int) error {
	return p.updateCopingMessage(ctx,
		`UPDATE coping_messages SET heart_rate_before = $2, update_datetime = now() WHERE coping_message_id = $1`,
		copingMessageID, bpm)
}

func (p *PostgresStorage) SetSatisfactionScore(ctx context.Context, copingMessageID int64, score string) error {
	return p.updateCopingMessage(ctx,
		`UPDATE coping_messages SET satisfaction_score = $2, update_datetime = now() WHERE coping_message_id = $1`,
		copingMessageID, score)
}

func (p *PostgresStorage) SetHeartRateAfter(ctx context.Context, copingMessageID int64, bpm int) error {
	return p.updateCopingMessage(ctx,
		`UPDATE coping_messages SET heart_rate_after = $2, update_datetime = now() WHERE coping_message_id = $1`,
		copingMessageID, bpm)
}

func (p *PostgresStorage) updateCopingMessage(ctx context.Context, query string, args ...any) error {
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to update coping message: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- DailyMessageRepository ---

func (p *PostgresStorage) SaveDailyMessage(ctx context.Context, m *internal.DailyMessage) error {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO daily_messages (user_id, daily_message_text, previous_days_score, todays_days_score, create_datetime, update_datetime)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING daily_message_id`,
		m.UserID, m.DailyMessageText, m.PreviousDaysScore, m.TodaysDaysScore,
		m.CreateDatetime, m.UpdateDatetime).Scan(&m.DailyMessageID)
	if err != nil {
		p.logger.Errorf("failed to insert daily message: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetDailyMessageForDay(ctx context.Context, userID int64, day string) (*internal.DailyMessage, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT daily_message_id, user_id, daily_message_text, previous_days_score, todays_days_score, create_datetime, update_datetime
		 FROM daily_messages WHERE user_id = $1 AND create_datetime::date = $2::date ORDER BY daily_message_id LIMIT 1`,
		userID, day)
	var m internal.DailyMessage
	err := row.Scan(&m.DailyMessageID, &m.UserID, &m.DailyMessageText, &m.PreviousDaysScore,
		&m.TodaysDaysScore, &m.CreateDatetime, &m.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query daily message: %v", err)
		return nil, err
	}
	return &m, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ CopingMasterRepository = (*PostgresStorage)(nil)
var _ CopingMessageRepository = (*PostgresStorage)(nil)
var _ DailyMessageRepository = (*PostgresStorage)(nil)
