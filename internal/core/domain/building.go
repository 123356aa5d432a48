package domain

const MaxBuildingFieldLength = 255

type Building struct {
	ID      uint64
	Name    string
	Address string
}

// Display renders a building the way notifications list it.
func (b Building) Display() string {
	return b.Name + " (" + b.Address + ")"
}

type BuildingInput struct {
	Name    string
	Address string
}

func (in BuildingInput) Validate() FieldErrors {
	errs := FieldErrors{}
	for field, value := range map[string]string{"name": in.Name, "address": in.Address} {
		switch {
		case value == "":
			errs.Add(field, FieldRequired)
		case len([]rune(value)) > MaxBuildingFieldLength:
			errs.Add(field, FieldTooLong)
		}
	}
	return errs
}

type BuildingPage struct {
	Buildings []Building
	Page      int
	NumPages  int
	Total     int
}
