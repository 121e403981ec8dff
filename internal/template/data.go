package template

import (
	"strings"

	"github.com/nikolayk812/shoppay/internal/domain"
)

type DeliveryData struct {
	CustomerName string
	OrderNumber  string
}

func BuildDeliveryData(n domain.DeliveryNotification) DeliveryData {
	return DeliveryData{
		CustomerName: strings.TrimSpace(n.CustomerName),
		OrderNumber:  n.OrderNumber,
	}
}
