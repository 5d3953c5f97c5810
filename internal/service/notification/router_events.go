package notification

import (
	"fmt"

	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
)

// RouterEvents adapts the notification service to the routing engine's
// Notifier interface.
type RouterEvents struct {
	svc *Service
}

func NewRouterEvents(svc *Service) *RouterEvents {
	return &RouterEvents{svc: svc}
}

func (r *RouterEvents) RequestAdvanced(req request.Request, approverIDs []string) {
	refID := req.ID
	r.svc.EnqueueMany(approverIDs, notification.Notification{
		SenderID:    &req.RequesterID,
		Type:        notification.TypeApprovalPending,
		Title:       "Approval needed",
		Message:     fmt.Sprintf("%s submitted a %s request awaiting your decision", req.RequesterName, typeLabel(req.Type)),
		ReferenceID: &refID,
	})
}

func (r *RouterEvents) RequestResolved(req request.Request) {
	refID := req.ID

	typ := notification.TypeRequestApproved
	title := "Request approved"
	msg := fmt.Sprintf("Your %s request was approved", typeLabel(req.Type))
	if req.Status == request.StatusRejected {
		typ = notification.TypeRequestRejected
		title = "Request rejected"
		msg = fmt.Sprintf("Your %s request was rejected", typeLabel(req.Type))
	}

	r.svc.Enqueue(notification.Notification{
		RecipientID: req.RequesterID,
		Type:        typ,
		Title:       title,
		Message:     msg,
		ReferenceID: &refID,
	})
}

func typeLabel(t request.Type) string {
	switch t {
	case request.TypeLeave:
		return "leave"
	case request.TypeProfileUpdate:
		return "profile update"
	case request.TypeBankUpdate:
		return "bank details update"
	case request.TypeDepartmental:
		return "departmental"
	default:
		return string(t)
	}
}
