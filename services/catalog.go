package services

import "strings"

// MaterialPrice is one catalog entry. Either Price carries a scalar unit
// price, or Type carries a structured breakdown (size tables for doors and
// windows, a flat material map for paint, nested walling material lists for
// wall finishes). The two never both govern a computation.
type MaterialPrice struct {
	ID       string
	Name     string
	Unit     string
	Price    float64
	Category string
	Type     *PriceBreakdown
}

// PriceBreakdown holds the category-specific nested price shapes.
type PriceBreakdown struct {
	// SizePrices maps a type name (e.g. door leaf "Flush") to a size-keyed
	// price table ("0.9x2.1" -> price).
	SizePrices map[string]map[string]float64 `json:"size_prices,omitempty"`

	// Materials is a flat material-name -> price map (paint category).
	Materials map[string]float64 `json:"materials,omitempty"`

	// WallingMaterials and TilingMaterials carry wall-finish rate entries;
	// the first rate of a material is its effective unit rate.
	WallingMaterials []RatedMaterial `json:"walling_materials,omitempty"`
	TilingMaterials  []RatedMaterial `json:"tiling_materials,omitempty"`
}

// RatedMaterial is a named material whose first rate entry is used.
type RatedMaterial struct {
	Name  string    `json:"name"`
	Rates []float64 `json:"rates"`
}

// RegionalMultiplier scales base prices for a region. Values are expected
// to stay within [0.5, 2.0]; the resolver applies whatever is stored.
type RegionalMultiplier struct {
	Region     string
	Multiplier float64
}

// PriceOverride is a user-set price that beats base x multiplier for the
// same material and region.
type PriceOverride struct {
	MaterialID string
	Region     string
	Price      float64
}

// PriceCatalog is the full pricing input passed explicitly into every
// calculator call. It is a plain value, never shared mutable state.
type PriceCatalog struct {
	Materials   []MaterialPrice
	Multipliers []RegionalMultiplier
	Overrides   []PriceOverride
}

// ResolvedPrice is the outcome of a lookup. Resolved is false when no price
// data exists; the price is then 0 and the line item should be flagged for
// review rather than treated as an error.
type ResolvedPrice struct {
	Price    float64
	Resolved bool
}

// FindMaterial locates a catalog entry by name: case-insensitive exact
// match first, then the first substring match in catalog order. The
// first-match rule can select a similarly named material when names
// overlap; it is kept for compatibility with existing catalogs.
func (c PriceCatalog) FindMaterial(name string) *MaterialPrice {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for i := range c.Materials {
		if strings.ToLower(c.Materials[i].Name) == needle {
			return &c.Materials[i]
		}
	}
	for i := range c.Materials {
		if strings.Contains(strings.ToLower(c.Materials[i].Name), needle) {
			return &c.Materials[i]
		}
	}
	return nil
}

// Multiplier returns the regional multiplier for region, defaulting to 1
// when the region has no entry.
func (c PriceCatalog) Multiplier(region string) float64 {
	for _, m := range c.Multipliers {
		if m.Region == region && m.Multiplier > 0 {
			return m.Multiplier
		}
	}
	return 1
}

// override returns the user price for (materialID, region) if one exists.
func (c PriceCatalog) override(materialID, region string) (float64, bool) {
	for _, o := range c.Overrides {
		if o.MaterialID == materialID && o.Region == region {
			return o.Price, true
		}
	}
	return 0, false
}

// ResolvePrice returns the effective scalar unit price for a material in a
// region. Precedence: user override, then base price x regional multiplier.
// A material without price data resolves to 0 with Resolved=false.
func (c PriceCatalog) ResolvePrice(name, region string) ResolvedPrice {
	mat := c.FindMaterial(name)
	if mat == nil {
		return ResolvedPrice{}
	}
	if price, ok := c.override(mat.ID, region); ok {
		return ResolvedPrice{Price: price, Resolved: true}
	}
	if mat.Price <= 0 {
		return ResolvedPrice{}
	}
	return ResolvedPrice{Price: mat.Price * c.Multiplier(region), Resolved: true}
}

// Price is a convenience wrapper returning just the numeric price.
func (c PriceCatalog) Price(name, region string) float64 {
	return c.ResolvePrice(name, region).Price
}

// SizePrice resolves a structured size-table price, e.g. the price of a
// "Flush" door in size "0.9x2.1" from the Doors category. The regional
// multiplier applies; a missing category, type or size yields 0.
func (c PriceCatalog) SizePrice(category, typeName, sizeKey, region string) float64 {
	mat := c.FindMaterial(category)
	if mat == nil || mat.Type == nil || mat.Type.SizePrices == nil {
		return 0
	}
	table, ok := mat.Type.SizePrices[typeName]
	if !ok {
		return 0
	}
	return table[sizeKey] * c.Multiplier(region)
}

// PaintLayerPrices carries the per-unit prices for the three painting
// layers: skimming filler (per bag), undercoat and finishing paint (per
// litre).
type PaintLayerPrices struct {
	Skimming  float64
	Undercoat float64
	Finishing float64
}

// PaintPrices extracts the layer prices from the paint category's material
// map using name patterns: "skimming" feeds the skimming layer,
// "undercoat" the undercoat layer, "emulsion" or "enamel" the finish.
func (c PriceCatalog) PaintPrices(region string) PaintLayerPrices {
	var prices PaintLayerPrices
	mat := c.FindMaterial("paint")
	if mat == nil || mat.Type == nil || mat.Type.Materials == nil {
		return prices
	}
	mult := c.Multiplier(region)
	for name, price := range mat.Type.Materials {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "skimming"):
			prices.Skimming = price * mult
		case strings.Contains(lower, "undercoat"):
			prices.Undercoat = price * mult
		case strings.Contains(lower, "emulsion"), strings.Contains(lower, "enamel"):
			prices.Finishing = price * mult
		}
	}
	return prices
}

// WallingRate resolves the unit rate for an internal finish material from
// the wall-finishes category, searching walling then tiling materials with
// the same exact-then-substring policy as FindMaterial.
func (c PriceCatalog) WallingRate(material, region string) float64 {
	mat := c.FindMaterial("wall-finishes")
	if mat == nil || mat.Type == nil {
		return 0
	}
	all := append(append([]RatedMaterial{}, mat.Type.WallingMaterials...), mat.Type.TilingMaterials...)
	needle := strings.ToLower(strings.TrimSpace(material))
	if needle == "" {
		return 0
	}

	var found *RatedMaterial
	for i := range all {
		if strings.ToLower(all[i].Name) == needle {
			found = &all[i]
			break
		}
	}
	if found == nil {
		for i := range all {
			if strings.Contains(strings.ToLower(all[i].Name), needle) {
				found = &all[i]
				break
			}
		}
	}
	if found == nil || len(found.Rates) == 0 {
		return 0
	}
	return found.Rates[0] * c.Multiplier(region)
}
