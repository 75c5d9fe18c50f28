package types

import (
	"roamsync/utility"
	"strings"
)

// Identifier types used on the roaming wire. Values keep their
// original casing for output; comparison and ordering are always
// case-insensitive on the trimmed text.

type LocationId string
type EvseUid string
type EvseId string
type ConnectorId string
type TokenId string
type SubscriptionId string
type PartyId string
type CountryCode string

func parseId(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", utility.Err("invalid format: empty identifier")
	}
	return strings.TrimSpace(s), nil
}

func idEqual(a, b string) bool {
	return utility.NormalizedText(a) == utility.NormalizedText(b)
}

func idLess(a, b string) bool {
	return utility.NormalizedText(a) < utility.NormalizedText(b)
}

func ParseLocationId(s string) (LocationId, error) {
	v, err := parseId(s)
	return LocationId(v), err
}

func TryParseLocationId(s string) (LocationId, bool) {
	v, err := ParseLocationId(s)
	return v, err == nil
}

func (id LocationId) String() string { return string(id) }
func (id LocationId) Equal(other LocationId) bool { return idEqual(string(id), string(other)) }
func (id LocationId) Less(other LocationId) bool { return idLess(string(id), string(other)) }

func ParseEvseUid(s string) (EvseUid, error) {
	v, err := parseId(s)
	return EvseUid(v), err
}

func TryParseEvseUid(s string) (EvseUid, bool) {
	v, err := ParseEvseUid(s)
	return v, err == nil
}

func (id EvseUid) String() string { return string(id) }
func (id EvseUid) Equal(other EvseUid) bool { return idEqual(string(id), string(other)) }
func (id EvseUid) Less(other EvseUid) bool { return idLess(string(id), string(other)) }

func ParseEvseId(s string) (EvseId, error) {
	v, err := parseId(s)
	return EvseId(v), err
}

func TryParseEvseId(s string) (EvseId, bool) {
	v, err := ParseEvseId(s)
	return v, err == nil
}

func (id EvseId) String() string { return string(id) }
func (id EvseId) Equal(other EvseId) bool { return idEqual(string(id), string(other)) }
func (id EvseId) Less(other EvseId) bool { return idLess(string(id), string(other)) }

func ParseConnectorId(s string) (ConnectorId, error) {
	v, err := parseId(s)
	return ConnectorId(v), err
}

func TryParseConnectorId(s string) (ConnectorId, bool) {
	v, err := ParseConnectorId(s)
	return v, err == nil
}

func (id ConnectorId) String() string { return string(id) }
func (id ConnectorId) Equal(other ConnectorId) bool { return idEqual(string(id), string(other)) }
func (id ConnectorId) Less(other ConnectorId) bool { return idLess(string(id), string(other)) }

func ParseTokenId(s string) (TokenId, error) {
	v, err := parseId(s)
	return TokenId(v), err
}

func TryParseTokenId(s string) (TokenId, bool) {
	v, err := ParseTokenId(s)
	return v, err == nil
}

func (id TokenId) String() string { return string(id) }
func (id TokenId) Equal(other TokenId) bool { return idEqual(string(id), string(other)) }
func (id TokenId) Less(other TokenId) bool { return idLess(string(id), string(other)) }

func ParseSubscriptionId(s string) (SubscriptionId, error) {
	v, err := parseId(s)
	return SubscriptionId(v), err
}

func TryParseSubscriptionId(s string) (SubscriptionId, bool) {
	v, err := ParseSubscriptionId(s)
	return v, err == nil
}

func (id SubscriptionId) String() string { return string(id) }
func (id SubscriptionId) Equal(other SubscriptionId) bool {
	return idEqual(string(id), string(other))
}
func (id SubscriptionId) Less(other SubscriptionId) bool { return idLess(string(id), string(other)) }

func ParsePartyId(s string) (PartyId, error) {
	v, err := parseId(s)
	return PartyId(v), err
}

func TryParsePartyId(s string) (PartyId, bool) {
	v, err := ParsePartyId(s)
	return v, err == nil
}

func (id PartyId) String() string { return string(id) }
func (id PartyId) Equal(other PartyId) bool { return idEqual(string(id), string(other)) }
func (id PartyId) Less(other PartyId) bool { return idLess(string(id), string(other)) }

func ParseCountryCode(s string) (CountryCode, error) {
	v, err := parseId(s)
	return CountryCode(v), err
}

func TryParseCountryCode(s string) (CountryCode, bool) {
	v, err := ParseCountryCode(s)
	return v, err == nil
}

func (c CountryCode) String() string { return string(c) }
func (c CountryCode) Equal(other CountryCode) bool { return idEqual(string(c), string(other)) }
func (c CountryCode) Less(other CountryCode) bool { return idLess(string(c), string(other)) }
