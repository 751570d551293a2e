package source

// ScrollForVendorToggle maps a scroll index in the current projection to the
// index showing the same content after vendor groups are collapsed or
// expanded. The collection's own hide flag is not consulted.
func (c *Collection) ScrollForVendorToggle(wasHiding, nowHiding bool, index int) int {
	if wasHiding == nowHiding || index == 0 {
		return index
	}
	if nowHiding {
		return c.scrollForHideVendor(index)
	}
	return c.scrollForShowVendor(index)
}

func (c *Collection) scrollForHideVendor(index int) int {
	seen, adjustment := 0, 0
	groups := make(map[int]bool)

	for _, line := range c.lines {
		wc := line.WrapCount()
		if seen+wc >= index {
			break
		}
		seen += wc

		if !line.IsCollapsibleVendor() {
			continue
		}
		if groups[line.vendorGroupID] {
			// folded away entirely
			adjustment += wc
			continue
		}
		// becomes the single marker row
		groups[line.vendorGroupID] = true
		adjustment += wc - 1
	}

	return max(0, index-adjustment)
}

func (c *Collection) scrollForShowVendor(index int) int {
	totals := make(map[int]int)
	for _, line := range c.lines {
		if line.IsCollapsibleVendor() {
			totals[line.vendorGroupID] += line.WrapCount()
		}
	}

	seen, add := 0, 0
	groups := make(map[int]bool)
	for _, line := range c.lines {
		if line.IsCollapsibleVendor() {
			if groups[line.vendorGroupID] {
				continue
			}
			groups[line.vendorGroupID] = true
			if seen+1 >= index {
				break
			}
			add += totals[line.vendorGroupID] - 1
			seen++
			continue
		}

		wc := line.WrapCount()
		if seen+wc >= index {
			break
		}
		seen += wc
	}

	return index + add
}

// ScrollForWrapToggle maps a scroll index across a change of wrap mode.
// While vendor frames are hidden each group counts as one row.
func (c *Collection) ScrollForWrapToggle(wasWrapping, nowWrapping bool, index int) int {
	if wasWrapping == nowWrapping || index == 0 {
		return index
	}
	if nowWrapping {
		return c.scrollForEnableWrap(index)
	}
	return c.scrollForDisableWrap(index)
}

func (c *Collection) scrollForDisableWrap(index int) int {
	seen, continuation := 0, 0
	groups := make(map[int]bool)

	for _, line := range c.lines {
		if c.hideVendor && line.IsCollapsibleVendor() {
			if groups[line.vendorGroupID] {
				continue
			}
			groups[line.vendorGroupID] = true
			seen++
			if seen >= index {
				break
			}
			continue
		}

		wc := line.WrapCount()
		if seen+wc >= index {
			continuation += max(0, index-seen-1)
			break
		}
		seen += wc
		continuation += wc - 1
	}

	return max(0, index-continuation)
}

func (c *Collection) scrollForEnableWrap(index int) int {
	seen, add := 0, 0
	groups := make(map[int]bool)

	for _, line := range c.lines {
		if c.hideVendor && line.IsCollapsibleVendor() {
			if groups[line.vendorGroupID] {
				continue
			}
			groups[line.vendorGroupID] = true
			seen++
			if seen >= index {
				break
			}
			continue
		}

		// only lines that end at or above index grow above it
		wc := line.WrapCount()
		if seen+wc > index {
			break
		}
		seen += wc
		add += max(0, line.fullWrapCount-wc)
	}

	return index + add
}
