package model

// 明細の参照先の種別（商品そのものか、そのバリアントか）
type LineRefKind string

const (
	LineRefProduct LineRefKind = "product"
	LineRefVariant LineRefKind = "variant"
)

// LineRef はカート明細・ウィッシュリストの参照先。
// 「productかvariantのどちらか一方」を型で保証する。
type LineRef struct {
	Kind LineRefKind
	ID   int64
}

func ProductRef(id int64) LineRef {
	return LineRef{Kind: LineRefProduct, ID: id}
}

func VariantRef(id int64) LineRef {
	return LineRef{Kind: LineRefVariant, ID: id}
}

func (r LineRef) Valid() bool {
	if r.ID <= 0 {
		return false
	}
	return r.Kind == LineRefProduct || r.Kind == LineRefVariant
}

func (r LineRef) IsVariant() bool {
	return r.Kind == LineRefVariant
}

// DBの2つのnullable FKへ変換する。
func (r LineRef) Columns() (productID *int64, variantID *int64) {
	id := r.ID
	if r.Kind == LineRefVariant {
		return nil, &id
	}
	return &id, nil
}

// DBの2つのnullable FKからLineRefへ戻す。
func RefFromColumns(productID *int64, variantID *int64) (LineRef, bool) {
	if variantID != nil {
		return VariantRef(*variantID), true
	}
	if productID != nil {
		return ProductRef(*productID), true
	}
	return LineRef{}, false
}
