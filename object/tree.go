package object

// TestAttribute reports whether attribute n is set, per spec.md's bit
// layout: attributes are stored left-aligned, attribute 0 in the highest
// bit.
func (d *Decoder) TestAttribute(obj Object, n uint16) bool {
	mask := uint64(1) << (63 - n)
	return obj.Attributes&mask == mask
}

// SetAttribute sets attribute n both on the in-memory object image and on
// the caller's cached Object value.
func (d *Decoder) SetAttribute(obj *Object, n uint16) error {
	mask := uint64(1) << (63 - n)
	obj.Attributes |= mask
	return d.codec.writeAttributes(d.mem, obj.BaseAddress, obj.Attributes)
}

// ClearAttribute clears attribute n both in memory and on the cached value.
func (d *Decoder) ClearAttribute(obj *Object, n uint16) error {
	mask := uint64(1) << (63 - n)
	obj.Attributes &^= mask
	return d.codec.writeAttributes(d.mem, obj.BaseAddress, obj.Attributes)
}

func (d *Decoder) setParent(obj *Object, parent uint16) error {
	obj.Parent = parent
	return d.codec.writeParent(d.mem, obj.BaseAddress, parent)
}

func (d *Decoder) setSibling(obj *Object, sibling uint16) error {
	obj.Sibling = sibling
	return d.codec.writeSibling(d.mem, obj.BaseAddress, sibling)
}

func (d *Decoder) setChild(obj *Object, child uint16) error {
	obj.Child = child
	return d.codec.writeChild(d.mem, obj.BaseAddress, child)
}

// Remove detaches id from its parent's child/sibling chain, leaving it
// parentless and siblingless. Grounded on the teacher's
// zmachine.go:RemoveObject.
func (d *Decoder) Remove(id uint16) error {
	obj, err := d.Decode(id)
	if err != nil {
		return err
	}
	if obj.Parent == 0 {
		return nil
	}

	parent, err := d.Decode(obj.Parent)
	if err != nil {
		return err
	}

	if parent.Child == obj.ID {
		if err := d.setChild(&parent, obj.Sibling); err != nil {
			return err
		}
	} else {
		currID := parent.Child
		for currID != 0 {
			curr, err := d.Decode(currID)
			if err != nil {
				return err
			}
			if curr.Sibling == obj.ID {
				if err := d.setSibling(&curr, obj.Sibling); err != nil {
					return err
				}
				break
			}
			currID = curr.Sibling
		}
	}

	if err := d.setParent(&obj, 0); err != nil {
		return err
	}
	return d.setSibling(&obj, 0)
}

// Insert moves id to become the first child of newParent, per spec.md's
// insert_obj. Grounded on the teacher's zmachine.go:MoveObject.
func (d *Decoder) Insert(id uint16, newParent uint16) error {
	obj, err := d.Decode(id)
	if err != nil {
		return err
	}
	dest, err := d.Decode(newParent)
	if err != nil {
		return err
	}
	if obj.Parent == dest.ID {
		return nil
	}

	if err := d.Remove(id); err != nil {
		return err
	}

	obj, err = d.Decode(id)
	if err != nil {
		return err
	}
	dest, err = d.Decode(newParent)
	if err != nil {
		return err
	}

	if err := d.setSibling(&obj, dest.Child); err != nil {
		return err
	}
	if err := d.setParent(&obj, dest.ID); err != nil {
		return err
	}
	return d.setChild(&dest, obj.ID)
}
