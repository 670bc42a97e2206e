package entities

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	return nil
}

func init() {
	gob.Register(Order{})
	gob.Register(LineItem{})
	gob.Register(PaymentInfo{})
	gob.Register(DeliveryInfo{})
	gob.Register(Location{})
}
