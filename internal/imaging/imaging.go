// imaging нормализует загружаемые фотографии: кадрирует до целевых
// пропорций с центральной гравитацией и перекодирует результат в JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Регистрация декодеров для image.Decode.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// jpegQuality — качество перекодирования итогового JPEG.
const jpegQuality = 85

// FillCrop декодирует исходные байты, вырезает центральную область
// с пропорциями width:height и масштабирует её точно в width x height.
// Результат всегда перекодируется в JPEG независимо от исходного формата.
func FillCrop(data []byte, width, height int) ([]byte, error) {
	const op = "imaging/FillCrop"

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%s: invalid target size %dx%d", op, width, height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	crop := centerCrop(src.Bounds(), width, height)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}

	return buf.Bytes(), nil
}

// centerCrop возвращает максимальный центрированный прямоугольник
// внутри bounds с пропорциями width:height.
func centerCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	// Сравнение пропорций без плавающей точки:
	// srcW/srcH > width/height  <=>  srcW*height > width*srcH.
	cropW := srcW
	cropH := srcH
	if srcW*height > width*srcH {
		cropW = srcH * width / height
	} else {
		cropH = srcW * height / width
	}

	x0 := bounds.Min.X + (srcW-cropW)/2
	y0 := bounds.Min.Y + (srcH-cropH)/2

	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
