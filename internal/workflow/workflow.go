// Package workflow drives order items from the cart to a distributor's
// quotation. It validates inputs, calls the gateway and keeps the stage
// Board current; the backend stays authoritative for everything it returns.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/session"
)

// Gateway is the backend surface the workflow consumes.
type Gateway interface {
	Products(ctx context.Context) ([]orders.Product, error)
	Product(ctx context.Context, id int64) (orders.Product, error)
	SearchProducts(ctx context.Context, name string) ([]orders.Product, error)

	AddToCart(ctx context.Context, req gateway.AddToCartRequest) (gateway.AddToCartResponse, error)
	Cart(ctx context.Context, userID int64) ([]orders.OrderItem, error)
	DeleteFromCart(ctx context.Context, itemID int64) error
	ConfirmedOrderItems(ctx context.Context) ([]orders.OrderItem, error)
	ConfirmedItems(ctx context.Context, userID int64) ([]orders.OrderItem, error)
	DistributorOrderItems(ctx context.Context, distributorID int64) ([]orders.OrderItem, error)
	MakeBooking(ctx context.Context, req gateway.BookingRequest) (gateway.MessageResponse, error)

	SendQuotation(ctx context.Context, req gateway.QuotationRequest) (gateway.MessageResponse, error)
	QuotationsByDistributor(ctx context.Context, distributorID int64) ([]orders.Quotation, error)
}

// Identities supplies the current identity; *session.Session satisfies it.
type Identities interface {
	Current() (session.Identity, bool)
}

// Events receives workflow events; *kafka.Producer satisfies it.
type Events interface {
	Emit(env orders.Envelope)
}

type nopEvents struct{}

func (nopEvents) Emit(orders.Envelope) {}

// ErrNotAuthenticated pre-empts an action that needs a logged-in user. No
// request is sent.
var ErrNotAuthenticated = errors.New("not authenticated")

const (
	LoginPrompt  = "Login as customer to add product to cart."
	GenericAlert = "Something went wrong. Please try again later."
	FieldsAlert  = "Please correct the highlighted fields."
)

// Alert turns any workflow error into the message shown to the user.
func Alert(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return LoginPrompt
	}
	if _, ok := orders.AsFieldErrors(err); ok {
		return FieldsAlert
	}
	var te *orders.TransitionError
	if errors.As(err, &te) {
		return "This order item cannot be quoted in its current state."
	}
	return GenericAlert
}

type Options struct {
	Board    *orders.Board
	Drafts   Drafts
	Events   Events
	Now      func() time.Time
	Producer string
	Logger   *slog.Logger
}

type Workflow struct {
	api      Gateway
	who      Identities
	board    *orders.Board
	drafts   Drafts
	events   Events
	now      func() time.Time
	producer string
	log      *slog.Logger
}

func New(api Gateway, who Identities, opts Options) *Workflow {
	w := &Workflow{
		api:      api,
		who:      who,
		board:    opts.Board,
		drafts:   opts.Drafts,
		events:   opts.Events,
		now:      opts.Now,
		producer: opts.Producer,
		log:      opts.Logger,
	}
	if w.board == nil {
		w.board = orders.NewBoard()
	}
	if w.drafts == nil {
		w.drafts = NewMemoryDrafts()
	}
	if w.events == nil {
		w.events = nopEvents{}
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.producer == "" {
		w.producer = "storefront"
	}
	if w.log == nil {
		w.log = slog.Default()
	}
	return w
}

func (w *Workflow) Board() *orders.Board { return w.board }

func (w *Workflow) identity() (session.Identity, error) {
	id, ok := w.who.Current()
	if !ok || id.UserID == 0 {
		return session.Identity{}, ErrNotAuthenticated
	}
	return id, nil
}

// fail logs a gateway failure at the call site and hands it back.
func (w *Workflow) fail(op string, err error, attrs ...any) error {
	w.log.Error(op+" failed", append(attrs, "error", err)...)
	return err
}

func (w *Workflow) emit(eventType string, correlationID int64, payload any) {
	env, err := orders.NewEnvelope(eventType, w.producer, strconv.FormatInt(correlationID, 10), payload, w.now())
	if err != nil {
		w.log.Error("build event", "type", eventType, "error", err)
		return
	}
	w.events.Emit(env)
}

// observe records listed items on the board. Items whose status the backend
// does not spell out are placed at fallback.
func (w *Workflow) observe(items []orders.OrderItem, owner int64, fallback orders.Stage) {
	for _, it := range items {
		s := fallback
		if parsed, ok := orders.ParseStage(it.Status); ok && orders.Reachable(fallback, parsed) {
			s = parsed
		}
		w.board.Observe(it.Key(), owner, s)
	}
}
