package device

import (
	"fmt"
	"strconv"
	"strings"

	domainDevice "github.com/Augusto140/Englife-server/internal/domain/device"
	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
	"github.com/Augusto140/Englife-server/pkg/utils"
)

// ParseOptionalID turns a select box value into an id. Blank means none.
func ParseOptionalID(field, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, appErrors.Validation(fmt.Sprintf("Campos inválidos: %s inválido", field), appErrors.ErrInvalidNumber)
	}
	v := uint(id)
	return &v, nil
}

// typeAliases maps the labels operators type into the form to stored types.
var typeAliases = map[string]domainDevice.Type{
	"alimentador": domainDevice.TypeFeeder,
}

// normalizeCreateRequest cleans the form input in place before validation.
func normalizeCreateRequest(req *CreateDeviceRequest) {
	req.Name = utils.SanitizeString(req.Name)
	req.Description = utils.SanitizeText(req.Description)
	req.MacAddress = utils.NormalizeMAC(req.MacAddress)
	req.IPAddress = utils.SanitizeString(req.IPAddress)
	req.Type = strings.ToLower(utils.SanitizeString(req.Type))
	req.Model = utils.SanitizeString(req.Model)
	req.LocationID = utils.SanitizeString(req.LocationID)
	if alias, ok := typeAliases[req.Type]; ok {
		req.Type = string(alias)
	}
}

func toDeviceEntity(req *CreateDeviceRequest, locationID *uint) *domainDevice.Device {
	return &domainDevice.Device{
		Name:        req.Name,
		Description: req.Description,
		MacAddress:  req.MacAddress,
		IPAddress:   utils.OptionalString(req.IPAddress),
		Type:        domainDevice.Type(req.Type),
		Model:       utils.OptionalString(req.Model),
		LocationID:  locationID,
	}
}
