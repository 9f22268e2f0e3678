package person

// Gender codes stored in the persons table.
const (
	GenderMale   = "L"
	GenderFemale = "P"
)

var genderCodes = map[string]string{
	"Laki-laki": GenderMale,
	"Perempuan": GenderFemale,
}

// MapGender translates the form's gender label to its one-letter code. Any
// other value, including the empty string, is returned unchanged.
func MapGender(label string) string {
	if code, ok := genderCodes[label]; ok {
		return code
	}
	return label
}
