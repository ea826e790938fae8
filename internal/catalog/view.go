package catalog

import (
	"strings"

	"github.com/fekuna/metalmarket-service/internal/model"
)

// View decides which product statuses a caller may see. Exactly one of
// PublicView, SellerView or StatusView applies to a query.
type View interface {
	visible(p *model.Product) bool
}

// PublicView is the buyer catalog: ACTIVE products of every seller.
type PublicView struct{}

// SellerView is a seller's own listing: every status, that seller only.
type SellerView struct {
	SellerID string
}

// StatusView is the admin moderation queue: exactly one status, every seller.
type StatusView struct {
	Status model.ProductStatus
}

func (PublicView) visible(p *model.Product) bool {
	return p.Status == model.ProductStatusActive
}

func (v SellerView) visible(p *model.Product) bool {
	return p.SellerID == v.SellerID
}

func (v StatusView) visible(p *model.Product) bool {
	return p.Status == v.Status
}

// ViewFor builds a View from loosely optional inputs. A seller id wins over a
// status, and a status wins over the public default.
func ViewFor(sellerID, status string) View {
	if sellerID = strings.TrimSpace(sellerID); sellerID != "" {
		return SellerView{SellerID: sellerID}
	}
	if status = strings.TrimSpace(status); status != "" {
		return StatusView{Status: model.ProductStatus(strings.ToUpper(status))}
	}
	return PublicView{}
}
