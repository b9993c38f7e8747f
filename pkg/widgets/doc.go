// Package widgets provides the stock widgets built on the core Widget
// contract: flex layouts (Row, Column), single-child boxes (Padding,
// SizedBox, Align, ColoredBox), paint effects (ClipRect, Opacity,
// AnimatedOpacity), Text, input (Gesture) and TextureView.
//
// Widgets are plain struct values. Build them with struct literals:
//
//	Column{
//	    CrossAxisAlignment: CrossAxisAlignmentCenter,
//	    Children: []core.Widget{
//	        Text{Content: "Count"},
//	        Padding{Padding: layout.EdgeInsetsAll(8), Child: button},
//	    },
//	}
//
// A widget whose fields are unchanged across builds is not rebuilt, so keep
// callbacks out of widget fields. Gesture reports taps as event.Tap values
// sent through an emitter obtained from the creating widget's BuildContext.
package widgets
