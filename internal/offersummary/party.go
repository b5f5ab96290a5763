package offersummary

import "strings"

// ResolveParty builds a party block field by field: live contact first, then the
// static record, then defaults, then NotProvided. Live contacts carry no tax
// identifiers, so those start at the static tier. defaults is nil for parties
// without a home organization.
func ResolveParty(live *ContactRecord, static *PartyInfo, defaults *PartyInfo) PartyInfo {
	var lv liveFields
	if live != nil {
		lv = liveFields{
			companyName: live.CompanyName,
			street:      live.Address.Street,
			cityZip:     joinCityZip(live.Address.ZipCode, live.Address.City),
			country:     live.Address.Country,
			name:        ComposeName(live.Name),
			email:       live.Contact.Email,
			phone:       live.Contact.Phone,
			website:     live.Contact.Website,
		}
	}

	st := orEmpty(static)
	df := orEmpty(defaults)

	return PartyInfo{
		CompanyName: Resolve(NotProvided, lv.companyName, st.CompanyName, df.CompanyName),
		Street:      Resolve(NotProvided, lv.street, st.Street, df.Street),
		CityZip:     Resolve(NotProvided, lv.cityZip, st.CityZip, df.CityZip),
		Country:     Resolve(NotProvided, lv.country, st.Country, df.Country),
		RegNumber:   Resolve(NotProvided, st.RegNumber, df.RegNumber),
		VatNumber:   Resolve(NotProvided, st.VatNumber, df.VatNumber),
		Contact: PartyContact{
			Name:    Resolve(NotProvided, lv.name, st.Contact.Name, df.Contact.Name),
			Email:   Resolve(NotProvided, lv.email, st.Contact.Email, df.Contact.Email),
			Phone:   Resolve(NotProvided, lv.phone, st.Contact.Phone, df.Contact.Phone),
			Website: Resolve(NotProvided, lv.website, st.Contact.Website, df.Contact.Website),
		},
	}
}

type liveFields struct {
	companyName, street, cityZip, country string
	name, email, phone, website           string
}

func orEmpty(p *PartyInfo) PartyInfo {
	if p == nil {
		return PartyInfo{}
	}
	return *p
}

func joinCityZip(zip, city string) string {
	return strings.TrimSpace(strings.TrimSpace(zip) + " " + strings.TrimSpace(city))
}
