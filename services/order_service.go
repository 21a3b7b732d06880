package services

import (
	"context"
	"strings"
	"time"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/repository"
)

const dateLayout = "2006-01-02"

type HistoryParams struct {
	Status    string
	StartDate string
	EndDate   string
	Month     string
	Page      int
	Limit     int
}

type OrderSummary struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	OrderDate     time.Time `json:"orderDate"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"statusDisplay"`
	Image         string    `json:"image"`
	ItemCount     int       `json:"itemCount"`
}

type OrderService struct {
	Store *repository.Store
}

func NewOrderService(store *repository.Store) *OrderService {
	return &OrderService{Store: store}
}

// historyRange turns the date filters into an inclusive time range. A month
// such as "October 2025" wins over explicit start and end dates.
func historyRange(p HistoryParams) (from, to *time.Time, err error) {
	if month := strings.TrimSpace(p.Month); month != "" {
		start, err := time.Parse("January 2006", month)
		if err != nil {
			return nil, nil, ErrInvalidDateFilter
		}
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &start, &end, nil
	}
	if p.StartDate != "" {
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return nil, nil, ErrInvalidDateFilter
		}
		from = &start
	}
	if p.EndDate != "" {
		end, err := time.Parse(dateLayout, p.EndDate)
		if err != nil {
			return nil, nil, ErrInvalidDateFilter
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func (s *OrderService) History(userID uint, p HistoryParams) ([]OrderSummary, int64, error) {
	from, to, err := historyRange(p)
	if err != nil {
		return nil, 0, err
	}
	orders, total, err := s.Store.Orders.ListHistory(repository.HistoryQuery{
		UserID: userID,
		Status: strings.TrimSpace(p.Status),
		From:   from,
		To:     to,
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summary := OrderSummary{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			OrderDate:   o.OrderDate,
			Total:       o.Total,
		}
		if o.Status != nil {
			summary.Status = o.Status.Name
			summary.StatusDisplay = o.Status.DisplayName
		}
		for _, item := range o.OrderItems {
			summary.ItemCount += item.Quantity
			if summary.Image == "" && item.Product != nil {
				summary.Image = item.Product.Image
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

func (s *OrderService) Detail(userID, orderID uint) (*models.Order, error) {
	order, err := s.Store.Orders.FindOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.Store.Orders.FindOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to one of the seeded statuses.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, statusName string) (*models.Order, error) {
	var updated *models.Order
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		status, err := tx.Orders.FindOrderStatus(strings.TrimSpace(statusName))
		if err != nil {
			return err
		}
		if status == nil {
			return ErrInvalidStatus
		}
		order, err := tx.Orders.FindOrder(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if _, err := tx.Orders.UpdateStatus(orderID, status.ID); err != nil {
			return err
		}
		updated, err = tx.Orders.FindOrder(orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
