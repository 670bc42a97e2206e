package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Item struct {
	ProductRef string          `json:"productRef"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type Delivery struct {
	Address      string `json:"address"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
}

type CreateOrderRequest struct {
	DriverRef       string          `json:"driverRef"`
	VendorRef       string          `json:"vendorRef"`
	Items           []Item          `json:"items"`
	TotalBillAmount decimal.Decimal `json:"totalBillAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	IsUrgent        bool            `json:"isUrgent"`
	Delivery        *Delivery       `json:"deliveryInfo,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
}

var tags = []string{"fragile", "cold", "bulk", "priority", "night"}

func generateRandomOrder() CreateOrderRequest {
	req := CreateOrderRequest{
		DriverRef: fmt.Sprintf("driver-%d", rand.Intn(20)+1),
		VendorRef: fmt.Sprintf("vendor-%d", rand.Intn(5)+1),
		IsUrgent:  rand.Intn(4) == 0,
		Delivery: &Delivery{
			Address:      fmt.Sprintf("Street %d", rand.Intn(100)),
			ContactName:  "John Doe",
			ContactPhone: fmt.Sprintf("+%d", rand.Intn(9999999999)),
		},
	}

	total := decimal.Zero
	for range rand.Intn(4) + 1 {
		item := Item{
			ProductRef: fmt.Sprintf("P%d", rand.Intn(50)+1),
			Quantity:   rand.Intn(10) + 1,
			UnitPrice:  decimal.New(int64(rand.Intn(10000)+100), -2),
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		req.Items = append(req.Items, item)
	}
	req.TotalBillAmount = total
	req.CollectedAmount = total.Mul(decimal.NewFromFloat(rand.Float64())).Round(2)

	if rand.Intn(2) == 0 {
		req.Tags = []string{tags[rand.Intn(len(tags))]}
	}
	// каждый десятый заказ с неверной суммой, он должен уйти в DLQ
	if rand.Intn(10) == 0 {
		req.TotalBillAmount = total.Add(decimal.NewFromInt(1))
	}
	return req
}

func main() {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP("localhost:9092"),
		Topic:                  "orders",
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder()
			data, err := json.Marshal(order)
			if err != nil {
				log.Println("failed to marshal order:", err)
				continue
			}
			if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(order.DriverRef), Value: data}); err != nil {
				log.Println("failed to write order:", err)
				continue
			}
			log.Println("order generated", order.DriverRef, order.TotalBillAmount)
		case <-ctx.Done():
			return
		}
	}
}
