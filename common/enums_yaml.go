package common

import (
	yaml "gopkg.in/yaml.v3"
)

// yaml.v3 does not consult encoding.TextUnmarshaler, so enums appearing in
// configuration and rule definition files implement the yaml interfaces
// directly on top of the generated parsers.

func (x Category) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *Category) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	v, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x Polarity) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *Polarity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	v, err := ParsePolarity(name)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x Severity) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *Severity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	v, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x ReportFmt) MarshalYAML() (any, error) {
	return x.String(), nil
}

func (x *ReportFmt) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	v, err := ParseReportFmt(name)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
