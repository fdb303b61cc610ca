package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is the struct used to decode all top-level blocks from a profile file.
type fileRoot struct {
	Sources  []*sourceBlock `hcl:"source,block"`
	Schedule *scheduleBody  `hcl:"schedule,block"`
	Tiers    *tiersBlock    `hcl:"tiers,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

type sourceBlock struct {
	Role       string `hcl:"role,label"`
	Identifier string `hcl:"identifier"`
	Account    string `hcl:"account,optional"`
	Account2   string `hcl:"account2,optional"`
	Surname    string `hcl:"surname,optional"`
	FirstName  string `hcl:"first_name,optional"`
	OtherNames string `hcl:"other_names,optional"`
	Employer   string `hcl:"employer,optional"`
}

// scheduleBody mirrors ScheduleSchema with every field optional, so a
// profile can override a single column name without restating the rest.
type scheduleBody struct {
	Identifier string `hcl:"identifier,optional"`
	Name       string `hcl:"name,optional"`
	Salary     string `hcl:"salary,optional"`
	Account    string `hcl:"account,optional"`
	Surname    string `hcl:"surname,optional"`
	FirstName  string `hcl:"first_name,optional"`
	OtherNames string `hcl:"other_names,optional"`
	Tier1      string `hcl:"tier1,optional"`
	Tier2      string `hcl:"tier2,optional"`
}

// tiersBlock carries the tier parameters as raw expressions so a profile
// may write them either as numbers or as strings; both are converted to
// exact decimals without a float round trip.
type tiersBlock struct {
	Tier1     hcl.Expression `hcl:"tier1,optional"`
	Tier2Rate hcl.Expression `hcl:"tier2_rate,optional"`
}

// Load parses a profile HCL file and overlays it on the default profile.
// Blocks and attributes absent from the file keep their default values.
func Load(path string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}

	profile := Default()

	for _, src := range root.Sources {
		var dst *SourceSchema
		switch src.Role {
		case "lookup":
			dst = &profile.Lookup
		case "master":
			dst = &profile.Master
		default:
			return nil, fmt.Errorf("profile %s: unknown source role %q (want \"lookup\" or \"master\")", path, src.Role)
		}
		overlaySource(dst, src)
	}

	if root.Schedule != nil {
		overlaySchedule(&profile.Schedule, root.Schedule)
	}

	if root.Tiers != nil {
		if v, ok, err := decimalAttr(root.Tiers.Tier1); err != nil {
			return nil, fmt.Errorf("profile %s: invalid tier1 amount: %w", path, err)
		} else if ok {
			profile.Tiers.Tier1 = v
		}
		if v, ok, err := decimalAttr(root.Tiers.Tier2Rate); err != nil {
			return nil, fmt.Errorf("profile %s: invalid tier2_rate: %w", path, err)
		} else if ok {
			profile.Tiers.Tier2Rate = v
		}
	}

	if err := profile.validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}

// decimalAttr evaluates an optional profile attribute into an exact
// decimal. Number values go through cty's big.Float representation;
// string values are parsed directly.
func decimalAttr(expr hcl.Expression) (decimal.Decimal, bool, error) {
	if expr == nil {
		return decimal.Decimal{}, false, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Decimal{}, false, diags
	}
	if v.IsNull() {
		return decimal.Decimal{}, false, nil
	}

	switch v.Type() {
	case cty.Number:
		d, err := decimal.NewFromString(v.AsBigFloat().Text('f', -1))
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		return d, true, nil
	case cty.String:
		d, err := decimal.NewFromString(v.AsString())
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		return d, true, nil
	default:
		return decimal.Decimal{}, false, fmt.Errorf("expected a number or string, got %s", v.Type().FriendlyName())
	}
}

func overlaySource(dst *SourceSchema, src *sourceBlock) {
	overlay(&dst.Identifier, src.Identifier)
	overlay(&dst.Account, src.Account)
	overlay(&dst.Account2, src.Account2)
	overlay(&dst.Surname, src.Surname)
	overlay(&dst.FirstName, src.FirstName)
	overlay(&dst.OtherNames, src.OtherNames)
	overlay(&dst.Employer, src.Employer)
}

func overlaySchedule(dst *ScheduleSchema, src *scheduleBody) {
	overlay(&dst.Identifier, src.Identifier)
	overlay(&dst.Name, src.Name)
	overlay(&dst.Salary, src.Salary)
	overlay(&dst.Account, src.Account)
	overlay(&dst.Surname, src.Surname)
	overlay(&dst.FirstName, src.FirstName)
	overlay(&dst.OtherNames, src.OtherNames)
	overlay(&dst.Tier1, src.Tier1)
	overlay(&dst.Tier2, src.Tier2)
}

// overlay sets dst from v only when the profile actually supplied a value.
func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
