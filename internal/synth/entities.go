package synth

import (
	"fmt"
	"strings"
	"time"
)

// generatePatients produces count patients with sequential ids starting at
// 1. Zip codes repeat by design: they are drawn from a small pre-generated
// pool shared by all patients.
func (g *Generator) generatePatients(count int) []*Patient {
	zipCodes := make([]string, 100)
	for i := range zipCodes {
		zipCodes[i] = fmt.Sprintf("%05d", g.s.IntBetween(10001, 99999))
	}

	patients := make([]*Patient, 0, count)
	for id := 1; id <= count; id++ {
		p := &Patient{
			PatientID:     id,
			EnterpriseID:  1000000 + id,
			Gender:        genderWeights.Sample(g.s),
			AgeBucket:     ageBucketWeights.Sample(g.s),
			RaceEthnicity: raceEthnicityWeights.Sample(g.s),
			ZipCode:       Pick(g.s, zipCodes),
		}

		// Two-stage portal model: 70% hold an account; half of those are
		// active (recent login), the rest last logged in 91-365 days ago.
		if g.s.Chance(0.70) {
			p.PortalEnterpriseID = id
			var daysAgo int
			if g.s.Chance(0.50) {
				daysAgo = g.s.IntBetween(1, 60)
			} else {
				daysAgo = g.s.IntBetween(91, 365)
			}
			login := g.now.AddDate(0, 0, -daysAgo)
			p.PortalLastLogin = &login
		}

		if g.s.Chance(0.80) {
			p.Email = g.randomEmail()
		}

		patients = append(patients, p)
	}
	return patients
}

// generateProviders produces count providers spread uniformly across the
// fixed specialty list.
func (g *Generator) generateProviders(count int) []*Provider {
	providers := make([]*Provider, 0, count)
	for id := 1; id <= count; id++ {
		first, last := g.randomName()
		providers = append(providers, &Provider{
			ProviderID:        id,
			FirstName:         first,
			LastName:          last,
			ProviderType:      providerTypeWeights.Sample(g.s),
			Specialty:         Pick(g.s, specialties),
			NPINumber:         fmt.Sprintf("%010d", g.s.Int63Between(1000000000, 9999999999)),
			Affiliation:       Pick(g.s, providerAffiliations),
			PatientFacingName: fmt.Sprintf("Dr. %s %s", first, last),
		})
	}
	return providers
}

// generateDepartments produces count departments tagged with a uniform
// random specialty and market region.
func (g *Generator) generateDepartments(count int) []*Department {
	departments := make([]*Department, 0, count)
	for id := 1; id <= count; id++ {
		specialty := Pick(g.s, specialties)
		market := Pick(g.s, markets)
		pos := placeOfServiceWeights.Sample(g.s)

		posCode := "02"
		if pos == PlaceOffice {
			posCode = "11"
		}
		division := "Specialty"
		if isPrimaryCare(specialty) {
			division = "Primary Care"
		}

		departments = append(departments, &Department{
			DepartmentID:       id,
			Name:               fmt.Sprintf("%s - %s", specialty, market),
			Specialty:          specialty,
			BillingName:        fmt.Sprintf("%s Clinic", specialty),
			PlaceOfServiceCode: posCode,
			PlaceOfServiceType: pos,
			Market:             market,
			Division:           division,
		})
	}
	return departments
}

// generateInsurance produces exactly one coverage record per patient, in
// patient order, reusing the patient id as the record id.
func (g *Generator) generateInsurance(patients []*Patient) []*Insurance {
	records := make([]*Insurance, 0, len(patients))
	for _, p := range patients {
		payer := payerWeights.Sample(g.s)
		company := Pick(g.s, insuranceCompanies[payer])

		rec := &Insurance{
			InsuranceID: p.PatientID,
			PatientID:   p.PatientID,
			SIPG1:       sipgCode(company),
			PayerGroup:  payer,
			CompanyName: company,
		}
		if payer != PayerSelfPay {
			rec.GroupID = fmt.Sprintf("%06d", g.s.IntBetween(100000, 999999))
		}
		records = append(records, rec)
	}
	return records
}

func (g *Generator) randomName() (first, last string) {
	if g.s.Chance(0.5) {
		first = Pick(g.s, firstNamesMale)
	} else {
		first = Pick(g.s, firstNamesFemale)
	}
	return first, Pick(g.s, lastNames)
}

func (g *Generator) randomEmail() string {
	first, last := g.randomName()
	return fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last))
}

// sipgCode derives the short insurance product group code from the company
// name: upper snake case truncated to 10 characters.
func sipgCode(company string) string {
	code := strings.ToUpper(strings.ReplaceAll(company, " ", "_"))
	if len(code) > 10 {
		code = code[:10]
	}
	return code
}

func isPrimaryCare(specialty string) bool {
	for _, s := range primaryCareSpecialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// dateOnly truncates t to midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
