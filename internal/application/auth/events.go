package auth

import (
	"time"

	"github.com/asaskevich/EventBus"
)

// SessionKind tipo de cambio de sesión.
type SessionKind string

const (
	SignedIn        SessionKind = "SIGNED_IN"
	SignedOut       SessionKind = "SIGNED_OUT"
	SignedUp        SessionKind = "SIGNED_UP"
	SessionRejected SessionKind = "SESSION_REJECTED"
)

const sessionTopic = "auth:session"

// SessionEvent cambio de sesión de un usuario.
type SessionEvent struct {
	Kind   SessionKind
	UserID string
	Email  string
	At     time.Time
}

// SessionEvents flujo de cambios de sesión. Los suscriptores se llaman en el mismo
// goroutine que publica, en orden de suscripción.
type SessionEvents struct {
	bus EventBus.Bus
}

// NewSessionEvents crea el flujo sobre un bus propio.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{bus: EventBus.New()}
}

// Publish emite el evento. Sin At se usa la hora actual.
func (s *SessionEvents) Publish(ev SessionEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	s.bus.Publish(sessionTopic, ev)
}

// Subscribe registra fn y devuelve la función para darse de baja.
func (s *SessionEvents) Subscribe(fn func(SessionEvent)) (unsubscribe func(), err error) {
	if err := s.bus.Subscribe(sessionTopic, fn); err != nil {
		return nil, err
	}
	return func() { _ = s.bus.Unsubscribe(sessionTopic, fn) }, nil
}
