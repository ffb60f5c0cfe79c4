package order

import (
	"errors"
	"fmt"
)

// Status est le statut d'une commande.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions encode la machine à états :
// pending → paid → shipped → delivered, annulation possible tant que
// la commande n'est pas expédiée. delivered et cancelled sont terminaux.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

var ErrInvalidStatus = errors.New("statut de commande inconnu")

// InvalidTransitionError signale une transition interdite par la machine
// à états (ex. revenir de shipped à pending).
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition de statut interdite: %s → %s", e.From, e.To)
}

// ParseStatus valide une valeur reçue de l'extérieur (API admin, webhook).
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ValidStatuses liste les statuts acceptés, pour les messages d'erreur API.
func ValidStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusPaid),
		string(StatusShipped),
		string(StatusDelivered),
		string(StatusCancelled),
	}
}

// CanTransitionTo indique si la machine à états autorise from → to.
// La transition identique est refusée ici ; l'idempotence de la confirmation
// de paiement est gérée au niveau du service, pas de la table.
func (from Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indique qu'aucune transition ne part de ce statut.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}
