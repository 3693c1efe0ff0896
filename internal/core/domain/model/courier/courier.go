package courier

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the availability record the geospatial directory works from:
// who the courier is, where they are, and whether they can receive offers.
//
// Eligibility (isVerified) is derived from the external verification
// workflow; this aggregate only stores the outcome. Only couriers that are
// both online and verified are visible to candidate searches.
type Courier struct {
	id         kernel.UUID
	name       string
	location   kernel.GeoPoint
	isOnline   bool
	isVerified bool

	guard guard.ConstructorGuard
}

// NewCourier creates a courier availability record. New couriers start
// offline and unverified; the verification collaborator flips eligibility
// via MarkVerified.
func NewCourier(id kernel.UUID, name string, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier record from persistence, including
// its online and verification flags.
func RestoreCourier(id kernel.UUID, name string, location kernel.GeoPoint, isOnline, isVerified bool) (*Courier, error) {
	c, err := NewCourier(id, name, location)
	if err != nil {
		return nil, err
	}
	c.isOnline = isOnline
	c.isVerified = isVerified
	return c, nil
}

// Validate checks the Courier was created via a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// IsOnline reports whether the courier is currently accepting work.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// IsVerified reports whether the external verification workflow approved
// this courier.
func (c *Courier) IsVerified() bool {
	return c.isVerified
}

// IsDispatchable reports whether the courier may appear in candidate
// searches: online and verified.
func (c *Courier) IsDispatchable() bool {
	return c.isOnline && c.isVerified
}

// SetLocation updates the courier's last reported position.
func (c *Courier) SetLocation(location kernel.GeoPoint) error {
	return c.setLocation(location)
}

// SetOnline flips the courier's availability toggle.
func (c *Courier) SetOnline(online bool) {
	c.isOnline = online
}

// MarkVerified records the verification outcome supplied by the external
// KYC collaborator.
func (c *Courier) MarkVerified(verified bool) {
	c.isVerified = verified
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
