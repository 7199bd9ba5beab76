package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("user not found")

func Create(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	INSERT INTO users
		(user_id, email, name, role, password_hash, long_term_patient,
		hospital_name, room_number, preferred_vr_mode, created_at, updated_at)
	VALUES
		(:user_id, :email, :name, :role, :password_hash, :long_term_patient,
		:hospital_name, :room_number, :preferred_vr_mode, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `
	SELECT user_id, email, name, role, password_hash, long_term_patient,
		hospital_name, room_number, preferred_vr_mode, created_at, updated_at
	FROM users
	WHERE user_id = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user: %w", err)
	}
	return usr, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `
	SELECT user_id, email, name, role, password_hash, long_term_patient,
		hospital_name, room_number, preferred_vr_mode, created_at, updated_at
	FROM users
	WHERE email = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user: %w", err)
	}
	return usr, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	UPDATE users SET
		name = :name,
		long_term_patient = :long_term_patient,
		hospital_name = :hospital_name,
		room_number = :room_number,
		preferred_vr_mode = :preferred_vr_mode,
		updated_at = :updated_at
	WHERE user_id = :user_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}
