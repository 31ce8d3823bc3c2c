package el

import "github.com/loomui/loom/pkg/vdom"

// VNode is re-exported so views importing only el can name the node type.
type VNode = vdom.VNode

// Attrs is re-exported for element attribute maps.
type Attrs = vdom.Attrs

func Html(args ...any) *VNode    { return vdom.El("html", args...) }
func Head(args ...any) *VNode    { return vdom.El("head", args...) }
func Body(args ...any) *VNode    { return vdom.El("body", args...) }
func Title(args ...any) *VNode   { return vdom.El("title", args...) }
func Header(args ...any) *VNode  { return vdom.El("header", args...) }
func Footer(args ...any) *VNode  { return vdom.El("footer", args...) }
func Main(args ...any) *VNode    { return vdom.El("main", args...) }
func Nav(args ...any) *VNode     { return vdom.El("nav", args...) }
func Section(args ...any) *VNode { return vdom.El("section", args...) }
func Article(args ...any) *VNode { return vdom.El("article", args...) }
func Aside(args ...any) *VNode   { return vdom.El("aside", args...) }

func H1(args ...any) *VNode { return vdom.El("h1", args...) }
func H2(args ...any) *VNode { return vdom.El("h2", args...) }
func H3(args ...any) *VNode { return vdom.El("h3", args...) }
func H4(args ...any) *VNode { return vdom.El("h4", args...) }
func H5(args ...any) *VNode { return vdom.El("h5", args...) }
func H6(args ...any) *VNode { return vdom.El("h6", args...) }

func Div(args ...any) *VNode        { return vdom.El("div", args...) }
func P(args ...any) *VNode          { return vdom.El("p", args...) }
func Span(args ...any) *VNode       { return vdom.El("span", args...) }
func Pre(args ...any) *VNode        { return vdom.El("pre", args...) }
func Code(args ...any) *VNode       { return vdom.El("code", args...) }
func Blockquote(args ...any) *VNode { return vdom.El("blockquote", args...) }
func Strong(args ...any) *VNode     { return vdom.El("strong", args...) }
func Em(args ...any) *VNode         { return vdom.El("em", args...) }
func Small(args ...any) *VNode      { return vdom.El("small", args...) }
func Br(args ...any) *VNode         { return vdom.El("br", args...) }
func Hr(args ...any) *VNode         { return vdom.El("hr", args...) }

func A(args ...any) *VNode   { return vdom.El("a", args...) }
func Img(args ...any) *VNode { return vdom.El("img", args...) }

func Ul(args ...any) *VNode { return vdom.El("ul", args...) }
func Ol(args ...any) *VNode { return vdom.El("ol", args...) }
func Li(args ...any) *VNode { return vdom.El("li", args...) }
func Dl(args ...any) *VNode { return vdom.El("dl", args...) }
func Dt(args ...any) *VNode { return vdom.El("dt", args...) }
func Dd(args ...any) *VNode { return vdom.El("dd", args...) }

func Table(args ...any) *VNode { return vdom.El("table", args...) }
func Thead(args ...any) *VNode { return vdom.El("thead", args...) }
func Tbody(args ...any) *VNode { return vdom.El("tbody", args...) }
func Tfoot(args ...any) *VNode { return vdom.El("tfoot", args...) }
func Tr(args ...any) *VNode    { return vdom.El("tr", args...) }
func Th(args ...any) *VNode    { return vdom.El("th", args...) }
func Td(args ...any) *VNode    { return vdom.El("td", args...) }

func Form(args ...any) *VNode     { return vdom.El("form", args...) }
func Label(args ...any) *VNode    { return vdom.El("label", args...) }
func Input(args ...any) *VNode    { return vdom.El("input", args...) }
func Textarea(args ...any) *VNode { return vdom.El("textarea", args...) }
func Select(args ...any) *VNode   { return vdom.El("select", args...) }
func OptionEl(args ...any) *VNode { return vdom.El("option", args...) }
func Button(args ...any) *VNode   { return vdom.El("button", args...) }
func Fieldset(args ...any) *VNode { return vdom.El("fieldset", args...) }
func Legend(args ...any) *VNode   { return vdom.El("legend", args...) }
