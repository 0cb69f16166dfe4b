package route

import (
	"strings"
	"time"
)

const (
	// MaxPoints caps the number of stops in a single route.
	MaxPoints = 5

	// DefaultUserID stands in for an authenticated user until real
	// authentication exists.
	DefaultUserID = 1
)

// Clock abstracts the current time so that future-date validation is
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the ambient system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// CreateRequest carries the client-supplied fields for creating a route.
type CreateRequest struct {
	Nome       string  `json:"nome"`
	Descricao  *string `json:"descricao"`
	DataInicio string  `json:"data_inicio"`
	DataFim    string  `json:"data_fim"`
	Pontos     []Point `json:"pontos_turisticos"`
	UserID     *int    `json:"user_id"`
}

// NewRoute validates req and builds the route to persist. The ID is
// assigned by storage; created_at and updated_at are set from clock.
func NewRoute(req CreateRequest, clock Clock) (*Route, error) {
	if strings.TrimSpace(req.Nome) == "" {
		return nil, &ValidationError{Msg: "Nome da rota é obrigatório"}
	}
	if req.DataInicio == "" {
		return nil, &ValidationError{Msg: "Data de início é obrigatória"}
	}
	if len(req.Pontos) > MaxPoints {
		return nil, &ValidationError{Msg: "Máximo de 5 pontos turísticos por rota"}
	}

	inicio, err := ParseTimestamp(req.DataInicio)
	if err != nil {
		return nil, &ValidationError{Msg: "Formato de data inválido. Use formato ISO (YYYY-MM-DDTHH:MM:SS)"}
	}
	now := clock.Now()
	if !inicio.After(now) {
		return nil, &ValidationError{Msg: "Data de início deve ser futura"}
	}

	var fim *time.Time
	if req.DataFim != "" {
		f, err := ParseTimestamp(req.DataFim)
		if err != nil {
			return nil, &ValidationError{Msg: "Formato de data de fim inválido. Use formato ISO (YYYY-MM-DDTHH:MM:SS)"}
		}
		if !f.After(inicio) {
			return nil, &ValidationError{Msg: "Data de fim deve ser posterior à data de início"}
		}
		fim = &f
	}

	pontos := req.Pontos
	if pontos == nil {
		pontos = []Point{}
	}

	userID := DefaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	return &Route{
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		DataInicio: inicio,
		DataFim:    fim,
		Pontos:     pontos,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateRequest carries a partial update: nil fields were absent from
// the request body and are left untouched.
type UpdateRequest struct {
	Nome       *string  `json:"nome"`
	Descricao  *string  `json:"descricao"`
	DataInicio *string  `json:"data_inicio"`
	DataFim    *string  `json:"data_fim"`
	Pontos     *[]Point `json:"pontos_turisticos"`
	UserID     *int     `json:"user_id"`
}

// ApplyUpdate validates req against current and returns the updated
// copy. current is never modified, so a validation failure leaves the
// stored record exactly as it was.
func ApplyUpdate(current Route, req UpdateRequest, clock Clock) (*Route, error) {
	userID := DefaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}
	if current.UserID != userID {
		return nil, &AuthorizationError{Msg: "Não autorizado a atualizar esta rota"}
	}

	updated := current

	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			return nil, &ValidationError{Msg: "Nome da rota não pode estar vazio"}
		}
		updated.Nome = *req.Nome
	}

	if req.Descricao != nil {
		updated.Descricao = req.Descricao
	}

	if req.DataInicio != nil {
		inicio, err := ParseTimestamp(*req.DataInicio)
		if err != nil {
			return nil, &ValidationError{Msg: "Formato de data de início inválido. Use formato ISO (YYYY-MM-DDTHH:MM:SS)"}
		}
		if !inicio.After(clock.Now()) {
			return nil, &ValidationError{Msg: "Data de início deve ser futura"}
		}
		updated.DataInicio = inicio
	}

	if req.DataFim != nil {
		if *req.DataFim == "" {
			updated.DataFim = nil
		} else {
			fim, err := ParseTimestamp(*req.DataFim)
			if err != nil {
				return nil, &ValidationError{Msg: "Formato de data de fim inválido. Use formato ISO (YYYY-MM-DDTHH:MM:SS)"}
			}
			// Compared against the possibly just-updated start date.
			if !fim.After(updated.DataInicio) {
				return nil, &ValidationError{Msg: "Data de fim deve ser posterior à data de início"}
			}
			updated.DataFim = &fim
		}
	}

	if req.Pontos != nil {
		if len(*req.Pontos) > MaxPoints {
			return nil, &ValidationError{Msg: "Máximo de 5 pontos turísticos por rota"}
		}
		updated.Pontos = *req.Pontos
	}

	updated.UpdatedAt = clock.Now()
	return &updated, nil
}

// ReorderRequest carries the full replacement order for a route's stops.
type ReorderRequest struct {
	NewOrder *[]Point `json:"new_order"`
	UserID   *int     `json:"user_id"`
}

// ApplyReorder validates that req.NewOrder is a pure permutation of the
// current stop list and returns the reordered copy. Insertion, removal,
// or substitution of stops is rejected.
func ApplyReorder(current Route, req ReorderRequest, clock Clock) (*Route, error) {
	userID := DefaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}
	if current.UserID != userID {
		return nil, &AuthorizationError{Msg: "Não autorizado a modificar esta rota"}
	}

	if req.NewOrder == nil {
		return nil, &ValidationError{Msg: "Nova ordem dos pontos é obrigatória"}
	}
	newOrder := *req.NewOrder

	if len(newOrder) != len(current.Pontos) {
		return nil, &ValidationError{Msg: "Nova ordem deve conter todos os pontos atuais"}
	}
	if !sameIDSet(current.Pontos, newOrder) {
		return nil, &ValidationError{Msg: "Nova ordem deve conter exatamente os mesmos pontos"}
	}

	updated := current
	updated.Pontos = newOrder
	updated.UpdatedAt = clock.Now()
	return &updated, nil
}

// sameIDSet reports whether two stop lists carry the same set of
// identifiers, ignoring order.
func sameIDSet(a, b []Point) bool {
	setA := make(map[string]struct{}, len(a))
	for _, p := range a {
		setA[idKey(p.ID())] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, p := range b {
		setB[idKey(p.ID())] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for k := range setB {
		if _, ok := setA[k]; !ok {
			return false
		}
	}
	return true
}
