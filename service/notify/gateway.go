package notify

import (
	"encoding/json"
	"log"

	"wms.GO/config"
)

// LowStockProduct is one shorted product in a low-stock alert.
type LowStockProduct struct {
	ProductName  string `json:"productName"`
	CurrentStock int64  `json:"currentStock"`
	SafetyStock  int64  `json:"safetyStock"`
}

// Recipient identifies who gets the alert (a supplier manager or the
// configured operations address).
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Gateway delivers low-stock alerts. Delivery details are outside the
// workflow's concern; implementations must not fail the calling workflow.
type Gateway interface {
	NotifyLowStock(recipient Recipient, products []LowStockProduct) error
}

// NewGateway returns the configured gateway chain: always logs, and also
// publishes to Redis when a client is configured.
func NewGateway() Gateway {
	gateways := []Gateway{&LogGateway{}}
	if config.RedisClient != nil {
		gateways = append(gateways, &RedisGateway{Channel: "wms:lowstock"})
	}
	return multiGateway(gateways)
}

// LogGateway writes alerts to the application log.
type LogGateway struct{}

func (g *LogGateway) NotifyLowStock(recipient Recipient, products []LowStockProduct) error {
	for _, p := range products {
		log.Printf("LOW STOCK alert to %s <%s>: %s stock=%d safety=%d",
			recipient.Name, recipient.Email, p.ProductName, p.CurrentStock, p.SafetyStock)
	}
	return nil
}

// RedisGateway publishes alerts as JSON for downstream mailers/dashboards.
type RedisGateway struct {
	Channel string
}

type redisPayload struct {
	Recipient Recipient         `json:"recipient"`
	Products  []LowStockProduct `json:"products"`
}

func (g *RedisGateway) NotifyLowStock(recipient Recipient, products []LowStockProduct) error {
	if config.RedisClient == nil {
		return nil
	}
	raw, err := json.Marshal(redisPayload{Recipient: recipient, Products: products})
	if err != nil {
		return err
	}
	return config.RedisClient.Publish(config.RedisCtx(), g.Channel, raw).Err()
}

type multiGateway []Gateway

func (m multiGateway) NotifyLowStock(recipient Recipient, products []LowStockProduct) error {
	var firstErr error
	for _, g := range m {
		if err := g.NotifyLowStock(recipient, products); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
