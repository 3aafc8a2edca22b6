package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/order"
)

// wizardResult is the payload of every wizard tool.
type wizardResult struct {
	Session  string         `json:"session"`
	Changed  bool           `json:"changed"`
	Snapshot order.Snapshot `json:"snapshot"`
}

type productView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Badge         string `json:"badge,omitempty"`
	Category      string `json:"category"`
}

type sectionView struct {
	Category string        `json:"category"`
	Title    string        `json:"title"`
	Products []productView `json:"products"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCatalogList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := catalog.Category(request.GetString("category", ""))

	sections := []sectionView{}
	for _, section := range s.currentCatalog().ByCategory() {
		if filter != "" && section.Category != filter {
			continue
		}
		view := sectionView{Category: string(section.Category), Title: section.Category.Title()}
		for _, p := range section.Products {
			pv := productView{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				Price:       p.Price.Label(),
				Badge:       p.Badge,
				Category:    string(p.Category),
			}
			if p.OriginalPrice != nil {
				pv.OriginalPrice = p.OriginalPrice.Label()
			}
			view.Products = append(view.Products, pv)
		}
		sections = append(sections, view)
	}
	return jsonResult(sections)
}

func (s *Server) handleWizardOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := s.registry.Open()
	return s.wizard(id, func(*order.Session) bool { return true })
}

func (s *Server) handleSelectType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ, err := order.ParseServerType(raw)
	if err != nil || !typ.Selected() {
		return mcp.NewToolResultError(fmt.Sprintf("type must be one of community, gaming, other; got %q", raw)), nil
	}
	return s.withSession(request, func(sess *order.Session) bool {
		return sess.SelectType(typ)
	})
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, (*order.Session).Advance)
}

func (s *Server) handleRetreat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, (*order.Session).Retreat)
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("option")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := order.ParseField(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.withSession(request, func(sess *order.Session) bool {
		return sess.Toggle(field)
	})
}

func (s *Server) handleFinalize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var issued *events.TicketEvent
	result, err := s.withSession(request, func(sess *order.Session) bool {
		if !sess.Finalize() {
			return false
		}
		ticket, _ := sess.Ticket()
		issued = &events.TicketEvent{
			Reference:  ticket.Reference,
			Kind:       ticket.Kind,
			Total:      sess.Total(),
			ServerType: sess.Config().ServerType.String(),
			IssuedAt:   time.Now(),
		}
		return true
	})
	if issued != nil {
		s.announcer.TicketIssued(ctx, *issued)
	}
	return result, err
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(sess *order.Session) bool {
		before := sess.Snapshot()
		sess.Reset()
		return sess.Snapshot() != before
	})
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withSession(request, func(*order.Session) bool { return false })
}

func (s *Server) handleClose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.registry.Close(id); err != nil {
		return sessionError(id, err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("closed session %s", id)), nil
}

// withSession applies op to the session named by the "session" argument
// and returns the resulting snapshot.
func (s *Server) withSession(request mcp.CallToolRequest, op func(*order.Session) bool) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.wizard(id, op)
}

func (s *Server) wizard(id string, op func(*order.Session) bool) (*mcp.CallToolResult, error) {
	var res wizardResult
	err := s.registry.With(id, func(sess *order.Session) {
		res = wizardResult{
			Session:  id,
			Changed:  op(sess),
			Snapshot: sess.Snapshot(),
		}
	})
	if err != nil {
		return sessionError(id, err), nil
	}
	return jsonResult(res)
}

func sessionError(id string, err error) *mcp.CallToolResult {
	if errors.Is(err, ErrUnknownSession) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown session %q", id))
	}
	return mcp.NewToolResultError(err.Error())
}
