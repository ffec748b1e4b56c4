package export

import (
	"encoding/json"
	"fmt"

	"modviz/internal/graph"
)

// HTML returns a self-contained viewer for a laid-out graph. Positions come
// straight from the simulator; the page only projects them, with a slow
// time-driven rotation for the settled idle state. Hover highlights a node
// and its direct neighbors; the search box dims non-matching modules.
func HTML(g *graph.Graph) string {
	type jsNode struct {
		ID    string  `json:"id"`
		Group string  `json:"group"`
		Cat   string  `json:"cat"`
		R     float64 `json:"r"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Z     float64 `json:"z"`
	}
	type jsEdge struct {
		S int    `json:"s"`
		T int    `json:"t"`
		K string `json:"k"`
	}

	nodes := make([]jsNode, 0, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		nodes = append(nodes, jsNode{ID: n.ID, Group: n.Group, Cat: n.CategoryPath, R: n.Radius, X: n.X, Y: n.Y, Z: n.Z})
	}
	edges := make([]jsEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		si, ok := g.NodeMap[e.Source]
		if !ok {
			continue
		}
		ti, ok := g.NodeMap[e.Target]
		if !ok {
			continue
		}
		edges = append(edges, jsEdge{S: si, T: ti, K: string(e.Kind)})
	}

	nodesJSON, _ := json.Marshal(nodes)
	edgesJSON, _ := json.Marshal(edges)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>modviz</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{background:#0b0e14;color:#d8dee9;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif;overflow:hidden}
canvas{display:block}
#info{position:fixed;top:16px;left:16px;z-index:10;background:rgba(11,14,20,0.9);border:1px solid rgba(82,139,255,0.3);border-radius:12px;padding:14px 18px;font-size:13px}
#info h2{color:#528BFF;font-size:15px;margin-bottom:6px}
.stat{color:#888;margin:2px 0}
.stat b{color:#ccc}
#search-box{position:fixed;top:16px;right:16px;z-index:10;background:rgba(11,14,20,0.9);border:1px solid rgba(82,139,255,0.3);border-radius:8px;padding:8px 14px;color:#d8dee9;font-size:13px;outline:none;width:200px;font-family:inherit}
#search-box:focus{border-color:#528BFF}
#legend{position:fixed;bottom:16px;left:16px;z-index:10;background:rgba(11,14,20,0.9);border:1px solid rgba(255,255,255,0.06);border-radius:10px;padding:10px 14px;font-size:11px;color:#666}
.leg-row{margin:3px 0;display:flex;align-items:center;gap:8px}
.dot{width:10px;height:10px;border-radius:50%%;display:inline-block}
</style>
</head>
<body>
<div id="info">
  <h2>modviz</h2>
  <div class="stat"><b id="n-nodes">0</b> modules</div>
  <div class="stat"><b id="n-edges">0</b> dependencies</div>
</div>
<input id="search-box" type="text" placeholder="Search modules...">
<div id="legend"></div>
<canvas id="canvas"></canvas>
<script>
"use strict";
const NODES=%s;
const EDGES=%s;

document.getElementById('n-nodes').textContent=NODES.length;
document.getElementById('n-edges').textContent=EDGES.length;

const PALETTE=['#528BFF','#2DB682','#E07C3A','#9B59B6','#E74C3C','#1ABC9C','#F1C40F','#E91E63'];
const GROUP_COLORS={};
const groups=[...new Set(NODES.map(n=>n.group||'Other'))].sort();
groups.forEach((gname,i)=>{GROUP_COLORS[gname]=PALETTE[i%%PALETTE.length]});

const legend=document.getElementById('legend');
groups.forEach(gname=>{
  const row=document.createElement('div');
  row.className='leg-row';
  const dot=document.createElement('span');
  dot.className='dot';
  dot.style.background=GROUP_COLORS[gname];
  row.appendChild(dot);
  row.appendChild(document.createTextNode(' '+gname));
  legend.appendChild(row);
});

// Symmetric adjacency for hover highlight.
const ADJ=NODES.map(()=>new Set());
for(const e of EDGES){ADJ[e.s].add(e.t);ADJ[e.t].add(e.s)}

const canvas=document.getElementById('canvas');
const ctx=canvas.getContext('2d');
let W,H;
function resize(){W=canvas.width=window.innerWidth;H=canvas.height=window.innerHeight}
resize();
window.addEventListener('resize',resize);

let yaw=0,pitch=-0.25,zoom=1,dragging=null,hovered=-1,query='';
const FOV=1200;

// Project a world position through the current rotation. Positions are
// frozen; only the camera moves.
function project(n){
  const cy=Math.cos(yaw),sy=Math.sin(yaw);
  const cp=Math.cos(pitch),sp=Math.sin(pitch);
  let x=n.x*cy-n.z*sy, z=n.x*sy+n.z*cy, y=n.y;
  let y2=y*cp-z*sp, z2=y*sp+z*cp;
  const s=FOV/(FOV+z2)*zoom;
  return[W/2+x*s,H/2+y2*s,s,z2];
}

function matches(n){return !query||n.id.toLowerCase().includes(query)||n.cat.toLowerCase().includes(query)}

function draw(t){
  // Slow idle rotation while nothing is being dragged.
  if(!dragging)yaw+=0.0015;
  ctx.clearRect(0,0,W,H);
  const proj=NODES.map(project);

  for(const e of EDGES){
    const a=proj[e.s],b=proj[e.t];
    let alpha=0.1;
    if(hovered>=0)alpha=(e.s===hovered||e.t===hovered)?0.8:0.03;
    else if(query)alpha=(matches(NODES[e.s])&&matches(NODES[e.t]))?0.6:0.03;
    ctx.beginPath();ctx.moveTo(a[0],a[1]);ctx.lineTo(b[0],b[1]);
    ctx.strokeStyle='rgba(130,160,255,'+alpha+')';
    ctx.setLineDash(e.k==='private'?[4,4]:[]);
    ctx.lineWidth=1;ctx.stroke();
  }
  ctx.setLineDash([]);

  // Painter's order: far nodes first.
  const order=NODES.map((_,i)=>i).sort((i,j)=>proj[j][3]-proj[i][3]);
  const pulse=1+0.03*Math.sin(t/640);
  for(const i of order){
    const n=NODES[i],p=proj[i];
    const hl=i===hovered||(hovered>=0&&ADJ[hovered].has(i));
    const dim=(hovered>=0&&!hl)||(query&&!matches(n));
    const r=Math.max(1.5,n.r*p[2]*(hl?1.35:1)*(hovered<0&&!query?pulse:1));
    const col=GROUP_COLORS[n.group]||'#528BFF';
    ctx.globalAlpha=dim?0.15:1;
    ctx.beginPath();ctx.arc(p[0],p[1],r,0,Math.PI*2);
    ctx.fillStyle=col;ctx.fill();
    if(hl){ctx.strokeStyle='#fff';ctx.lineWidth=1.5;ctx.stroke()}
    if(hl||(!dim&&r>5)){
      ctx.font=(hl?'bold ':'')+'11px -apple-system,sans-serif';
      ctx.fillStyle=hl?'#fff':'#99a';ctx.textAlign='center';
      ctx.fillText(n.id,p[0],p[1]+r+12);
    }
    ctx.globalAlpha=1;
  }
  requestAnimationFrame(draw);
}

function findNode(sx,sy){
  for(let i=NODES.length-1;i>=0;i--){
    const p=project(NODES[i]);
    const r=Math.max(4,NODES[i].r*p[2]);
    const dx=p[0]-sx,dy=p[1]-sy;
    if(dx*dx+dy*dy<r*r)return i;
  }
  return -1;
}

canvas.addEventListener('mousedown',e=>{dragging={sx:e.clientX,sy:e.clientY,yaw,pitch}});
canvas.addEventListener('mouseup',()=>{dragging=null});
canvas.addEventListener('mousemove',e=>{
  if(dragging){
    yaw=dragging.yaw+(e.clientX-dragging.sx)*0.005;
    pitch=dragging.pitch+(e.clientY-dragging.sy)*0.005;
  }else{
    hovered=findNode(e.clientX,e.clientY);
    canvas.style.cursor=hovered>=0?'pointer':'default';
  }
});
canvas.addEventListener('wheel',e=>{
  e.preventDefault();
  zoom=Math.max(0.2,Math.min(4,zoom*(e.deltaY>0?0.9:1.1)));
},{passive:false});

document.getElementById('search-box').addEventListener('input',function(){
  query=this.value.toLowerCase();
});

requestAnimationFrame(draw);
</script>
</body>
</html>`, string(nodesJSON), string(edgesJSON))
}
