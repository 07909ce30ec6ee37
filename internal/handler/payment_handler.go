package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/sefazor/taskflow-client/internal/controller"
	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/service"
	"github.com/sefazor/taskflow-client/pkg/payment"
)

type PaymentHandler struct {
	paymentController *controller.PaymentController
	pages             *Pages
	// baseCtx ends every event stream on server shutdown.
	baseCtx           context.Context
	clock             clock.WithTicker
	heartbeat         time.Duration
	logger            *zap.Logger
}

func NewPaymentHandler(
	baseCtx context.Context,
	paymentController *controller.PaymentController,
	pages *Pages,
	clk clock.WithTicker,
	heartbeat time.Duration,
	logger *zap.Logger,
) *PaymentHandler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &PaymentHandler{
		paymentController: paymentController,
		pages:             pages,
		baseCtx:           baseCtx,
		clock:             clk,
		heartbeat:         heartbeat,
		logger:            logger,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	orgID := c.Params("orgId")
	back := "/organizations/" + url.PathEscape(orgID)

	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		h.pages.Notify(notify.LevelError, "Invalid request body")
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	req.OrganizationID = orgID

	var location string
	nav := service.NavigatorFunc(func(target string) error {
		location = target
		return nil
	})

	// Failures are already queued as toasts.
	if err := h.paymentController.CreateCheckoutSession(c.UserContext(), req, nav, h.pages.flash); err != nil {
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	return c.Redirect(location, fiber.StatusSeeOther)
}

func (h *PaymentHandler) PaymentSuccess(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		out := h.paymentController.WatchPayment(c.UserContext(), "", h.pages.flash, nil)
		return h.pages.Render(c, "payment_success", fiber.Map{
			"State":   string(out.State),
			"Message": service.MessageInvalidSession,
		})
	}

	return h.pages.Render(c, "payment_success", fiber.Map{
		"State":     string(payment.StateChecking),
		"SessionID": sessionID,
	})
}

func (h *PaymentHandler) PaymentCancel(c *fiber.Ctx) error {
	return h.pages.Render(c, "payment_cancel", nil)
}

// PaymentEvents streams the poller transitions of one checkout session as
// server-sent events. The poll lives as long as the stream: once the client
// closes the connection the poll is cancelled.
func (h *PaymentHandler) PaymentEvents(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(service.MessageInvalidSession))
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Accel-Buffering", "no")

	// The stream owns the connection; it is never handed back for reuse.
	c.Context().SetConnectionClose()
	conn := c.Context().Conn()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		gone, stop := watchClose(conn)
		defer stop()
		h.stream(w, sessionID, gone)
	}))
	return nil
}

// watchClose reports on gone when the peer closes conn or the read side fails.
// An SSE client sends nothing after its request, so any read result means the
// client is done. stop unblocks the pending read and waits for it.
func watchClose(conn net.Conn) (gone <-chan struct{}, stop func()) {
	ch := make(chan struct{})
	if conn == nil {
		return ch, func() {}
	}

	// Any deadline left from reading the request would read as a disconnect.
	_ = conn.SetReadDeadline(time.Time{})

	exited := make(chan struct{})
	go func() {
		defer close(exited)
		var b [1]byte
		_, _ = conn.Read(b[:])
		close(ch)
	}()

	return ch, func() {
		_ = conn.SetReadDeadline(time.Now())
		<-exited
	}
}

type sseFrame struct {
	event    string
	data     interface{}
	terminal bool
}

func (h *PaymentHandler) stream(w *bufio.Writer, sessionID string, gone <-chan struct{}) {
	ctx, cancel := context.WithCancel(h.baseCtx)
	defer cancel()

	log := h.logger.With(zap.String("session_id", sessionID))

	frames := make(chan sseFrame, 4)
	send := func(f sseFrame) {
		select {
		case frames <- f:
		case <-ctx.Done():
		}
	}

	toasts := notify.NotifierFunc(func(level notify.Level, message string) {
		send(sseFrame{event: "toast", data: notify.Toast{Level: level, Message: message}})
	})

	done := make(chan payment.Outcome, 1)
	go func() {
		done <- h.paymentController.WatchPayment(ctx, sessionID, toasts, func(ev models.PaymentEvent) {
			send(sseFrame{event: "state", data: ev, terminal: ev.Terminal})
		})
	}()

	heartbeat := h.clock.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case f := <-frames:
			if err := writeFrame(w, f); err != nil {
				log.Debug("event stream closed", zap.Error(err))
				cancel()
				<-done
				return
			}
			if f.terminal {
				<-done
				return
			}
		case <-heartbeat.C():
			if err := writeComment(w, "ping"); err != nil {
				log.Debug("event stream closed", zap.Error(err))
				cancel()
				<-done
				return
			}
		case <-gone:
			log.Debug("event stream client went away")
			cancel()
			<-done
			return
		case <-ctx.Done():
			<-done
			return
		}
	}
}

func writeFrame(w *bufio.Writer, f sseFrame) error {
	data, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", f.event, data); err != nil {
		return err
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer, comment string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", comment); err != nil {
		return err
	}
	return w.Flush()
}
