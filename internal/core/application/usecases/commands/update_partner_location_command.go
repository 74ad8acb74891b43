package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePartnerLocationCommandIsNotConstructed = errors.New(
	"UpdatePartnerLocationCommand must be created via NewUpdatePartnerLocationCommand constructor",
)

// UpdatePartnerLocationCommand records a fresh GPS position for a partner.
// Partners report their position periodically; the stored location feeds the
// proximity search and the ranking of assignment candidates.
type UpdatePartnerLocationCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdatePartnerLocationCommand creates a command to move a partner.
func NewUpdatePartnerLocationCommand(
	partnerID kernel.UUID, location kernel.GeoPoint,
) (UpdatePartnerLocationCommand, error) {
	command := UpdatePartnerLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPartnerID(partnerID),
		command.setLocation(location),
	); err != nil {
		return UpdatePartnerLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdatePartnerLocationCommandIsNotConstructed if validation fails.
func (c UpdatePartnerLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerLocationCommandIsNotConstructed)
}

// PartnerID returns the partner to move.
func (c UpdatePartnerLocationCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Location returns the reported position.
func (c UpdatePartnerLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdatePartnerLocationCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *UpdatePartnerLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
