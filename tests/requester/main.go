package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/orders"

var listings = []string{
	"/pending",
	"/in-progress",
	"/completed",
	"/urgent",
	"/by-driver/driver-1",
	"/?sortBy=totalBillAmount&sortOrder=desc&limit=5",
	"/?search=ORD&page=2&limit=10",
}

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func doRequest() {
	switch rand.Intn(3) {
	case 0:
		createOrder()
	default:
		get(baseURL + listings[rand.Intn(len(listings))])
	}
}

func createOrder() {
	qty := rand.Intn(5) + 1
	body, _ := json.Marshal(map[string]any{
		"driverRef":       fmt.Sprintf("driver-%d", rand.Intn(3)+1),
		"vendorRef":       "vendor-1",
		"items":           []map[string]any{{"productRef": "P1", "quantity": qty, "unitPrice": 10}},
		"totalBillAmount": qty * 10,
	})

	resp, err := http.Post(baseURL, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	defer resp.Body.Close()

	var order struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&order)
	fmt.Println("POST", baseURL, "->", resp.Status)

	if order.ID != "" {
		get(baseURL + "/" + order.ID)
	}
}

func get(url string) {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	fmt.Println("GET", url, "->", resp.Status)
	resp.Body.Close()
}
