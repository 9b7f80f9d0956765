package cms

// GROQ projections used against the content store. The schema is owned by the
// content store; these queries only rely on the product projection shape.
const (
	// allProductsQuery fetches the entire catalog in one call. There is no
	// fetch-side pagination; pages slice the full set in memory.
	allProductsQuery = `*[_type == "product"]{
  _id,
  title,
  description,
  price,
  discountPercentage,
  tags,
  isNew,
  "imageUrl": productImage.asset->url
}`

	// productByIDQuery fetches a single product by its identifier.
	productByIDQuery = `*[_type == "product" && _id == $id][0]{
  _id,
  title,
  description,
  price,
  discountPercentage,
  tags,
  "imageUrl": productImage.asset->url
}`

	// relatedProductsQuery fetches products sharing at least one tag with the
	// source product, excluding the source product itself.
	relatedProductsQuery = `*[_type == "product" && _id != $id && count(tags[@ in $tags]) > 0]{
  _id,
  title,
  price,
  tags,
  "imageUrl": productImage.asset->url
}`
)
