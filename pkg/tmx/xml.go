package tmx

import "encoding/xml"

// Raw document structures. Optional attributes with non-zero defaults use
// pointers so an absent attribute can be told apart from an explicit zero.

type xmlMap struct {
	XMLName         xml.Name      `xml:"map"`
	Version         string        `xml:"version,attr"`
	TiledVersion    string        `xml:"tiledversion,attr"`
	Class           string        `xml:"class,attr"`
	Orientation     string        `xml:"orientation,attr"`
	RenderOrder     string        `xml:"renderorder,attr"`
	Width           int           `xml:"width,attr"`
	Height          int           `xml:"height,attr"`
	TileWidth       int           `xml:"tilewidth,attr"`
	TileHeight      int           `xml:"tileheight,attr"`
	Infinite        int           `xml:"infinite,attr"`
	BackgroundColor string        `xml:"backgroundcolor,attr"`
	ParallaxOriginX float32       `xml:"parallaxoriginx,attr"`
	ParallaxOriginY float32       `xml:"parallaxoriginy,attr"`
	Properties      []xmlProperty `xml:"properties>property"`
	Tilesets        []xmlTileset  `xml:"tileset"`
	Layers          []xmlLayer    `xml:",any"`
}

type xmlProperty struct {
	Name         string `xml:"name,attr"`
	Type         string `xml:"type,attr"`
	PropertyType string `xml:"propertytype,attr"`
	Value        string `xml:"value,attr"`
	Text         string `xml:",chardata"`
}

type xmlImage struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	Trans  string `xml:"trans,attr"`
}

type xmlTileset struct {
	XMLName    xml.Name       `xml:"tileset"`
	FirstGID   uint32         `xml:"firstgid,attr"`
	Source     string         `xml:"source,attr"`
	Name       string         `xml:"name,attr"`
	Class      string         `xml:"class,attr"`
	TileWidth  int            `xml:"tilewidth,attr"`
	TileHeight int            `xml:"tileheight,attr"`
	Spacing    int            `xml:"spacing,attr"`
	Margin     int            `xml:"margin,attr"`
	TileCount  int            `xml:"tilecount,attr"`
	Columns    int            `xml:"columns,attr"`
	TileOffset *xmlTileOffset `xml:"tileoffset"`
	Grid       *xmlGrid       `xml:"grid"`
	Image      *xmlImage      `xml:"image"`
	Terrains   []xmlTerrain   `xml:"terraintypes>terrain"`
	WangSets   []xmlWangSet   `xml:"wangsets>wangset"`
	Tiles      []xmlTile      `xml:"tile"`
	Properties []xmlProperty  `xml:"properties>property"`
}

type xmlTileOffset struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type xmlGrid struct {
	Orientation string `xml:"orientation,attr"`
	Width       int    `xml:"width,attr"`
	Height      int    `xml:"height,attr"`
}

type xmlTerrain struct {
	Name string `xml:"name,attr"`
	Tile int    `xml:"tile,attr"`
}

type xmlWangSet struct {
	Name   string         `xml:"name,attr"`
	Type   string         `xml:"type,attr"`
	Tile   *int           `xml:"tile,attr"`
	Colors []xmlWangColor `xml:"wangcolor"`
	Tiles  []xmlWangTile  `xml:"wangtile"`
}

type xmlWangColor struct {
	Name        string  `xml:"name,attr"`
	Color       string  `xml:"color,attr"`
	Tile        int     `xml:"tile,attr"`
	Probability float64 `xml:"probability,attr"`
}

type xmlWangTile struct {
	TileID uint32 `xml:"tileid,attr"`
	WangID string `xml:"wangid,attr"`
}

type xmlTile struct {
	ID          uint32        `xml:"id,attr"`
	Type        string        `xml:"type,attr"`
	Class       string        `xml:"class,attr"`
	Probability *float64      `xml:"probability,attr"`
	Terrain     string        `xml:"terrain,attr"`
	Image       *xmlImage     `xml:"image"`
	Animation   []xmlFrame    `xml:"animation>frame"`
	ObjectGroup *xmlLayer     `xml:"objectgroup"`
	Properties  []xmlProperty `xml:"properties>property"`
}

type xmlFrame struct {
	TileID   uint32 `xml:"tileid,attr"`
	Duration int    `xml:"duration,attr"`
}

// xmlLayer is the union of every layer element. XMLName tells the kind;
// Layers holds group children in document order.
type xmlLayer struct {
	XMLName   xml.Name `xml:""`
	ID        int      `xml:"id,attr"`
	Name      string   `xml:"name,attr"`
	Class     string   `xml:"class,attr"`
	OffsetX   float32  `xml:"offsetx,attr"`
	OffsetY   float32  `xml:"offsety,attr"`
	ParallaxX *float32 `xml:"parallaxx,attr"`
	ParallaxY *float32 `xml:"parallaxy,attr"`
	Opacity   *float32 `xml:"opacity,attr"`
	TintColor string   `xml:"tintcolor,attr"`
	Visible   *int     `xml:"visible,attr"`
	Locked    int      `xml:"locked,attr"`

	// layer
	Width  int      `xml:"width,attr"`
	Height int      `xml:"height,attr"`
	Data   *xmlData `xml:"data"`

	// objectgroup
	Color     string      `xml:"color,attr"`
	DrawOrder string      `xml:"draworder,attr"`
	Objects   []xmlObject `xml:"object"`

	// imagelayer
	Image   *xmlImage `xml:"image"`
	RepeatX int       `xml:"repeatx,attr"`
	RepeatY int       `xml:"repeaty,attr"`

	Properties []xmlProperty `xml:"properties>property"`
	Layers     []xmlLayer    `xml:",any"`
}

type xmlData struct {
	Encoding    string        `xml:"encoding,attr"`
	Compression string        `xml:"compression,attr"`
	Payload     string        `xml:",chardata"`
	Tiles       []xmlDataTile `xml:"tile"`
	Chunks      []xmlChunk    `xml:"chunk"`
}

// xmlDataTile is a cell in the legacy element-per-tile encoding.
type xmlDataTile struct {
	GID uint32 `xml:"gid,attr"`
}

type xmlChunk struct {
	X       int           `xml:"x,attr"`
	Y       int           `xml:"y,attr"`
	Width   int           `xml:"width,attr"`
	Height  int           `xml:"height,attr"`
	Payload string        `xml:",chardata"`
	Tiles   []xmlDataTile `xml:"tile"`
}

type xmlObject struct {
	ID         int           `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Class      string        `xml:"class,attr"`
	X          float32       `xml:"x,attr"`
	Y          float32       `xml:"y,attr"`
	Width      float32       `xml:"width,attr"`
	Height     float32       `xml:"height,attr"`
	Rotation   float32       `xml:"rotation,attr"`
	GID        uint32        `xml:"gid,attr"`
	Visible    *int          `xml:"visible,attr"`
	Template   string        `xml:"template,attr"`
	Ellipse    *struct{}     `xml:"ellipse"`
	Point      *struct{}     `xml:"point"`
	Polygon    *xmlPoints    `xml:"polygon"`
	Polyline   *xmlPoints    `xml:"polyline"`
	Text       *xmlText      `xml:"text"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlPoints struct {
	Points string `xml:"points,attr"`
}

type xmlText struct {
	Content    string `xml:",chardata"`
	FontFamily string `xml:"fontfamily,attr"`
	PixelSize  *int   `xml:"pixelsize,attr"`
	Wrap       int    `xml:"wrap,attr"`
	Color      string `xml:"color,attr"`
	Bold       int    `xml:"bold,attr"`
	Italic     int    `xml:"italic,attr"`
	HAlign     string `xml:"halign,attr"`
	VAlign     string `xml:"valign,attr"`
}
