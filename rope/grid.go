package rope

// DefaultCellSize 单元格边长（像素）
const DefaultCellSize = 20

// Dims 画布尺寸（像素）
type Dims struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GridToCanvas 网格坐标 -> 单元格左上角像素坐标，以画布中点为原点，y 轴翻转
func GridToCanvas(p GridPoint, dims Dims, cell int) (x, y int) {
	x = p.X*cell + dims.Width/2 - cell/2
	y = -p.Y*cell + dims.Height/2 - cell/2
	return x, y
}

// CanvasToGrid GridToCanvas 的逆映射；单元格内任意像素都映射回同一格
func CanvasToGrid(x, y int, dims Dims, cell int) GridPoint {
	return GridPoint{
		X: floorDiv(x-dims.Width/2+cell/2, cell),
		Y: -floorDiv(y-dims.Height/2+cell/2, cell),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
