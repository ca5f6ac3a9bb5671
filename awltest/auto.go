package awltest

import (
	"github.com/awl-di/awl"
)

// The automotive graph below exercises every wiring mechanism at once:
// interface bindings, qualifiers, scoped sharing, lazy providers,
// constructor/field/method injection across an embedding hierarchy,
// override suppression and a static slot.

type Engine interface {
	Cylinders() int
}

type V8Engine struct{}

func (*V8Engine) Cylinders() int { return 8 }

// Drivers marks the driver-side seat binding.
func Drivers() awl.Qualifier {
	return awl.Qualifier{Name: "drivers"}
}

type Seat interface {
	Position() string
}

// Cupholder is scope-cached; every seat in a graph shares one.
type Cupholder struct{}

type BucketSeat struct {
	Holder *Cupholder `awl:""`
}

func (*BucketSeat) Position() string { return "front" }

type DriversSeat struct {
	BucketSeat
}

func (*DriversSeat) Position() string { return "drivers" }

type Tire struct {
	Label string
}

type SpareTire struct {
	Tire
}

func NewSpareTire() *SpareTire {
	return &SpareTire{Tire: Tire{Label: "spare"}}
}

type Car struct {
	Engine   Engine               `awl:""`
	Spare    *SpareTire           `awl:""`
	LazySeat awl.Provider[Seat]   // qualified via the Field option

	driver Seat
	Steps  []string
}

func NewCar(driver Seat) *Car {
	return &Car{driver: driver}
}

func (c *Car) Driver() Seat { return c.driver }

func (c *Car) InstallWheels(front, rear *Tire) {
	c.Steps = append(c.Steps, "car wheels")
}

type Convertible struct {
	Car
}

func NewConvertible(driver Seat) *Convertible {
	return &Convertible{Car: Car{driver: driver}}
}

func (c *Convertible) InstallWheels(front, rear *Tire) {
	c.Steps = append(c.Steps, "convertible wheels")
}

// SpareSlot is the static injection target of Car: set once per
// injector, on the first car built.
var SpareSlot *SpareTire

// InstallAutomotive wires the reference graph into in.
func InstallAutomotive(in *awl.Injector) {
	awl.Bind[Engine, *V8Engine](in)
	awl.Bind[Seat, *DriversSeat](in, Drivers())

	awl.MustDescribe[*Cupholder](in, awl.Scoped())
	awl.MustDescribe[*SpareTire](in, awl.Constructor(NewSpareTire), awl.Scoped())
	awl.MustDescribe[*Car](in,
		awl.Constructor(NewCar, awl.Param(Drivers())),
		awl.Method((*Car).InstallWheels),
		awl.Field("LazySeat", Drivers()),
		awl.StaticField("SpareSlot", &SpareSlot),
	)
	awl.MustDescribe[*Convertible](in,
		awl.Constructor(NewConvertible, awl.Param(Drivers())),
		awl.Method((*Convertible).InstallWheels),
	)
}
