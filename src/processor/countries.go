// countries.go
package processor

import "strings"

// CountryUnknown is the display name used when the country cell is absent.
const CountryUnknown = "Inconnu"

// iso2Countries maps ISO 3166-1 alpha-2 codes to the French display names
// shown on the dashboard. Codes outside this table pass through uppercased.
var iso2Countries = map[string]string{
	"AL": "Albanie",
	"AT": "Autriche",
	"BA": "Bosnie-Herzégovine",
	"BE": "Belgique",
	"BG": "Bulgarie",
	"CH": "Suisse",
	"CZ": "Tchéquie",
	"DE": "Allemagne",
	"DK": "Danemark",
	"EE": "Estonie",
	"ES": "Espagne",
	"FI": "Finlande",
	"FR": "France",
	"GB": "Royaume-Uni",
	"GR": "Grèce",
	"HR": "Croatie",
	"HU": "Hongrie",
	"IE": "Irlande",
	"IS": "Islande",
	"IT": "Italie",
	"LT": "Lituanie",
	"LU": "Luxembourg",
	"LV": "Lettonie",
	"MD": "Moldavie",
	"ME": "Monténégro",
	"MK": "Macédoine du Nord",
	"MT": "Malte",
	"NL": "Pays-Bas",
	"NO": "Norvège",
	"PL": "Pologne",
	"PT": "Portugal",
	"RO": "Roumanie",
	"RS": "Serbie",
	"SE": "Suède",
	"SI": "Slovénie",
	"SK": "Slovaquie",
	"UA": "Ukraine",
}

// CountryName resolves an ISO2 code (case-insensitive, surrounding
// whitespace ignored) to its display name. Unmapped codes are returned
// uppercased; an empty code resolves to CountryUnknown.
func CountryName(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return CountryUnknown
	}
	if name, ok := iso2Countries[c]; ok {
		return name
	}
	return c
}
