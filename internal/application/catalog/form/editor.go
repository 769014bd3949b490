package form

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
	"github.com/menudash/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notice messages shown to the user after a submission
const (
	MsgEditSuccess   = "Complement edited successfully"
	MsgEditFailure   = "Failed to edit complement, try again shortly"
	MsgCreateSuccess = "Complement created successfully"
	MsgCreateFailure = "Failed to create complement, try again shortly"
)

// Notice levels
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a toast shown after a submission
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Result is the outcome of a submission
type Result struct {
	ComplementID     uuid.UUID         `json:"complementId,omitempty"`
	Notices          []Notice          `json:"notices"`
	Error            bool              `json:"error"`
	CloseDialog      bool              `json:"closeDialog"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// Succeeded reports whether the submission went through
func (r *Result) Succeeded() bool {
	return !r.Error && len(r.ValidationErrors) == 0
}

// Loaded is a complement loaded for editing: the populated values and the
// items the submission reconciles against
type Loaded struct {
	ComplementID uuid.UUID
	Values       Values
	Items        []catalogapp.ComplementItemResponse
}

// Option configures a ComplementEditor
type Option func(*ComplementEditor)

// WithMetrics records submissions and child calls
func WithMetrics(metrics *telemetry.FormMetrics) Option {
	return func(e *ComplementEditor) {
		e.metrics = metrics
	}
}

// ComplementEditor drives the complement create/edit form
type ComplementEditor struct {
	gateway  Gateway
	validate *validator.Validate
	metrics  *telemetry.FormMetrics
	logger   *zap.Logger
}

// NewComplementEditor creates a new ComplementEditor
func NewComplementEditor(gateway Gateway, logger *zap.Logger, opts ...Option) *ComplementEditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &ComplementEditor{
		gateway:  gateway,
		validate: newValidator(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the complement and populates the form values
func (e *ComplementEditor) Load(ctx context.Context, id uuid.UUID) (*Loaded, error) {
	complement, err := e.gateway.GetComplementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Loaded{
		ComplementID: complement.ID,
		Values:       valuesFrom(complement),
		Items:        complement.Items,
	}, nil
}

// Validate checks values against the form schema. It returns a *ValidationError
// when a field is invalid.
func (e *ComplementEditor) Validate(values Values) error {
	return validate(e.validate, values)
}

// Submit applies edited values to a loaded complement.
//
// The complement's fields are updated first; if that fails nothing else is
// sent. Then every selected product gets the complement attached, and items
// are reconciled by position against loaded.Items: row i updates loaded item i
// and rows past the loaded count are created in one batch. Rows are left alone
// when the complement had no items. Child calls run concurrently and all run
// to completion. Nothing is rolled back.
func (e *ComplementEditor) Submit(ctx context.Context, loaded *Loaded, values Values) *Result {
	start := time.Now()
	if err := e.Validate(values); err != nil {
		return invalid(err)
	}

	err := e.submitEdit(ctx, loaded, values)
	e.metrics.RecordSubmission(ctx, "edit", err == nil, time.Since(start))
	if err != nil {
		e.logger.Warn("Complement form submission failed",
			zap.String("complement_id", loaded.ComplementID.String()),
			zap.Error(err))
		return failed(loaded.ComplementID, MsgEditFailure)
	}
	return succeeded(loaded.ComplementID, MsgEditSuccess)
}

// Create creates a complement from form values: the complement, then its
// items in one batch, then the product attachments
func (e *ComplementEditor) Create(ctx context.Context, companyID uuid.UUID, values Values) *Result {
	start := time.Now()
	if err := e.Validate(values); err != nil {
		return invalid(err)
	}

	id, err := e.submitCreate(ctx, companyID, values)
	e.metrics.RecordSubmission(ctx, "create", err == nil, time.Since(start))
	if err != nil {
		e.logger.Warn("Complement form creation failed",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return failed(id, MsgCreateFailure)
	}
	return succeeded(id, MsgCreateSuccess)
}

func (e *ComplementEditor) submitEdit(ctx context.Context, loaded *Loaded, values Values) error {
	rows, err := itemInputs(values.Items)
	if err != nil {
		return err
	}

	required := values.IsRequired()
	_, err = e.gateway.EditComplement(ctx, loaded.ComplementID, catalogapp.EditComplementRequest{
		Name:      &values.Name,
		MaxAmount: values.MaxAmount,
		Required:  &required,
	})
	e.metrics.RecordChildCall(ctx, "editComplement", err)
	if err != nil {
		return err
	}

	// No WithContext: a failed call must not cancel the others
	var g errgroup.Group
	e.attachProducts(ctx, &g, loaded.ComplementID, values.productIDs())

	if len(rows) > 0 && len(loaded.Items) > 0 {
		var batch []catalogapp.ItemInput
		for i, row := range rows {
			if i >= len(loaded.Items) {
				batch = append(batch, row)
				continue
			}
			itemID := loaded.Items[i].ID
			g.Go(func() error {
				_, err := e.gateway.EditItem(ctx, itemID, catalogapp.EditItemRequest{Name: &row.Name, Price: row.Price})
				e.metrics.RecordChildCall(ctx, "editItem", err)
				return err
			})
		}
		if len(batch) > 0 {
			g.Go(func() error {
				return e.createItems(ctx, loaded.ComplementID, batch)
			})
		}
	}

	return g.Wait()
}

func (e *ComplementEditor) submitCreate(ctx context.Context, companyID uuid.UUID, values Values) (uuid.UUID, error) {
	rows, err := itemInputs(values.Items)
	if err != nil {
		return uuid.Nil, err
	}

	complement, err := e.gateway.CreateComplement(ctx, catalogapp.CreateComplementRequest{
		CompanyID: companyID,
		Name:      values.Name,
		Required:  values.IsRequired(),
		MaxAmount: *values.MaxAmount,
	})
	e.metrics.RecordChildCall(ctx, "createComplement", err)
	if err != nil {
		return uuid.Nil, err
	}

	if len(rows) > 0 {
		if err := e.createItems(ctx, complement.ID, rows); err != nil {
			return complement.ID, err
		}
	}

	var g errgroup.Group
	e.attachProducts(ctx, &g, complement.ID, values.productIDs())
	return complement.ID, g.Wait()
}

// attachProducts issues one editProduct call per product
func (e *ComplementEditor) attachProducts(ctx context.Context, g *errgroup.Group, complementID uuid.UUID, productIDs []uuid.UUID) {
	for _, productID := range productIDs {
		g.Go(func() error {
			_, err := e.gateway.EditProduct(ctx, productID, catalogapp.EditProductRequest{
				ComplementsID: []uuid.UUID{complementID},
			})
			e.metrics.RecordChildCall(ctx, "editProduct", err)
			return err
		})
	}
}

func (e *ComplementEditor) createItems(ctx context.Context, complementID uuid.UUID, items []catalogapp.ItemInput) error {
	_, err := e.gateway.CreateItems(ctx, catalogapp.CreateItemsRequest{
		ComplementID: complementID,
		Items:        items,
	})
	e.metrics.RecordChildCall(ctx, "createItem", err)
	return err
}

// itemInputs converts validated item rows to request items, in row order
func itemInputs(rows []ItemValues) ([]catalogapp.ItemInput, error) {
	items := make([]catalogapp.ItemInput, 0, len(rows))
	for _, row := range rows {
		price, err := valueobject.ParsePrice(row.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, catalogapp.ItemInput{Name: row.Name, Price: &price})
	}
	return items, nil
}

// valuesFrom populates form values from a loaded complement
func valuesFrom(c *catalogapp.ComplementResponse) Values {
	maxAmount := c.MaxAmount
	required := RequiredNo
	if c.Required {
		required = RequiredYes
	}

	items := make([]ItemValues, len(c.Items))
	for i, item := range c.Items {
		items[i] = ItemValues{Name: item.Name, Price: item.Price.String()}
	}

	productIDs := make([]string, len(c.ProductIDs))
	for i, id := range c.ProductIDs {
		productIDs[i] = id.String()
	}

	return Values{
		Name:       c.Name,
		MaxAmount:  &maxAmount,
		Required:   required,
		Items:      items,
		ProductIDs: productIDs,
	}
}

func invalid(err error) *Result {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &Result{Notices: []Notice{}, ValidationErrors: vErr.Fields}
	}
	return &Result{
		Notices:          []Notice{},
		ValidationErrors: map[string]string{"": err.Error()},
	}
}

func failed(id uuid.UUID, msg string) *Result {
	return &Result{
		ComplementID: id,
		Notices:      []Notice{{Level: NoticeError, Message: msg}},
		Error:        true,
		CloseDialog:  true,
	}
}

func succeeded(id uuid.UUID, msg string) *Result {
	return &Result{
		ComplementID: id,
		Notices:      []Notice{{Level: NoticeSuccess, Message: msg}},
		CloseDialog:  true,
	}
}
