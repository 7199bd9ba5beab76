package contact

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, msg Message) error {
	const q = `
	INSERT INTO contact_messages (message_id, name, email, message, created_at)
	VALUES (:message_id, :name, :email, :message, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, msg); err != nil {
		return fmt.Errorf("inserting contact message: %w", err)
	}
	return nil
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in MessageNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		msg := Message{
			ID:        validate.GenerateID(),
			Name:      in.Name,
			Email:     in.Email,
			Message:   in.Message,
			CreatedAt: time.Now().UTC(),
		}

		if err := Create(ctx, db, msg); err != nil {
			return err
		}

		return web.Respond(ctx, w, msg, http.StatusCreated)
	}
}
