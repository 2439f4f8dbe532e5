package tradein

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// Customer-facing validation messages.
const (
	MsgInvalidPhone    = "Введите корректный номер телефона"
	MsgUserCarRequired = "Укажите ваш автомобиль"
	MsgNegativeAmount  = "Сумма не может быть отрицательной"
	MsgCarNotFound     = "Автомобиль не найден"
)

const (
	maxUserCarLength = 200
	maxCommentLength = 1000
)

// SubmitInput holds the fields of the customer form. The submitter's Telegram
// user id is not part of the form: Submit reads it from the session in ctx
// (ctxutil.TelegramIDFromCtx) so a client cannot claim another user's id.
type SubmitInput struct {
	Phone         string
	UserCar       string
	TargetCarID   *uuid.UUID
	TradeInAmount *int64
	Comment       *string
}

// Validate checks all fields and collects all errors. Phone errors come first.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if !domain.IsValidPhone(i.Phone) {
		errs = append(errs, domain.FieldError{Field: "phone", Message: MsgInvalidPhone})
	}

	userCar := strings.TrimSpace(i.UserCar)
	if userCar == "" {
		errs = append(errs, domain.FieldError{Field: "user_car", Message: MsgUserCarRequired})
	}
	if utf8.RuneCountInString(userCar) > maxUserCarLength {
		errs = append(errs, domain.FieldError{Field: "user_car", Message: "max 200 characters"})
	}

	if i.TradeInAmount != nil && *i.TradeInAmount < 0 {
		errs = append(errs, domain.FieldError{Field: "trade_in_amount", Message: MsgNegativeAmount})
	}

	if i.TargetCarID != nil && *i.TargetCarID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_car_id", Message: MsgCarNotFound})
	}

	if i.Comment != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Comment)) > maxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteInput holds the parameters for a hard delete.
type DeleteInput struct {
	ID        uuid.UUID
	Confirmed bool
}

// Validate checks the id and the confirmation flag.
func (i DeleteInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if !i.Confirmed {
		return domain.ErrConfirmationRequired
	}
	return nil
}

// QuoteInput holds the parameters of the delta calculator.
type QuoteInput struct {
	TargetCarID uuid.UUID
	Amount      *int64
}

// Validate checks all fields and collects all errors.
func (i QuoteInput) Validate() error {
	var errs []domain.FieldError
	if i.TargetCarID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_car_id", Message: "required"})
	}
	if i.Amount != nil && *i.Amount < 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: MsgNegativeAmount})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
