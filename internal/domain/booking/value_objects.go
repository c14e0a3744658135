package booking

import (
	"errors"
	"strings"
)

var ErrInvalidVehicle = errors.New("vehicle number and type are required")

const maxVehicleFieldLen = 32

type Vehicle struct {
	number string
	kind   string
}

func NewVehicle(number, kind string) (Vehicle, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	kind = strings.ToLower(strings.TrimSpace(kind))
	if number == "" || kind == "" || len(number) > maxVehicleFieldLen || len(kind) > maxVehicleFieldLen {
		return Vehicle{}, ErrInvalidVehicle
	}
	return Vehicle{number: number, kind: kind}, nil
}

func (v Vehicle) Number() string { return v.number }
func (v Vehicle) Type() string   { return v.kind }
