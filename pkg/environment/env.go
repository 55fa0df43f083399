package environment

type Env int

const (
	Unknown Env = iota
	Development
	Production
)

func FromString(s string) Env {
	switch s {
	case "dev", "development":
		return Development
	case "prod", "production":
		return Production
	default:
		return Unknown
	}
}

func (e Env) String() string {
	switch e {
	case Development:
		return "dev"
	case Production:
		return "prod"
	default:
		return "unknown"
	}
}

func (e *Env) UnmarshalText(text []byte) error {
	*e = FromString(string(text))
	return nil
}

func (e *Env) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string

	err := unmarshal(&raw)
	if err != nil {
		return err
	}

	*e = FromString(raw)
	return nil
}
