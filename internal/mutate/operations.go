package mutate

// operation describes the user-facing texts of one coordinator action.
type operation struct {
	name    string
	loading string
	success string
	failure string
}

var (
	opReload         = operation{name: "reload", loading: "Loading data…", failure: "Failed to load data"}
	opAddItem        = operation{name: "addItem", loading: "Adding…", success: "Item added", failure: "Failed to add item"}
	opUpdateItem     = operation{name: "updateItem", loading: "Updating…", success: "Item updated", failure: "Failed to update item"}
	opDeleteItem     = operation{name: "deleteItem", loading: "Deleting…", success: "Item deleted", failure: "Failed to delete item"}
	opAddCategory    = operation{name: "addCategory", loading: "Adding category…", success: "Category added", failure: "Failed to add category"}
	opDeleteCategory = operation{name: "deleteCategory", loading: "Deleting category…", success: "Category deleted", failure: "Failed to delete category"}
	opReorder        = operation{name: "updateOrder", loading: "Saving order…", success: "Order saved", failure: "Failed to save order"}
	opUploadImage    = operation{name: "uploadImage", loading: "Uploading image…", failure: "Image upload failed"}
)
